package wildberries

// cardResponse карточка товара из basket CDN (card.json)
type cardResponse struct {
	ImtName     string `json:"imt_name"`
	Description string `json:"description"`
	Selling     struct {
		BrandName string `json:"brand_name"`
	} `json:"selling"`
	Options []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"options"`
}

// detailResponse ответ detail API (цены, рейтинг, поставщик).
// API отдаёт products либо в data.products, либо на верхнем уровне
type detailResponse struct {
	Data struct {
		Products []detailProduct `json:"products"`
	} `json:"data"`
	Products []detailProduct `json:"products"`
}

type detailProduct struct {
	Brand        string  `json:"brand"`
	Supplier     string  `json:"supplier"`
	ReviewRating float64 `json:"reviewRating"`
	Rating       float64 `json:"rating"`
	Feedbacks    int     `json:"feedbacks"`
	Sizes        []struct {
		Price *struct {
			Basic   int64 `json:"basic"`
			Product int64 `json:"product"`
		} `json:"price"`
	} `json:"sizes"`
}
