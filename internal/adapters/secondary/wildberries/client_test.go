package wildberries

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExtractArticul(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
		ok   bool
	}{
		{
			name: "catalog link",
			url:  "https://www.wildberries.ru/catalog/149751046/detail.aspx",
			want: "149751046",
			ok:   true,
		},
		{
			name: "nm query parameter",
			url:  "https://www.wildberries.ru/product?card=1&nm=149751046",
			want: "149751046",
			ok:   true,
		},
		{
			name: "no articul",
			url:  "https://www.wildberries.ru/catalog/muzhchinam/odezhda",
			want: "",
			ok:   false,
		},
		{
			name: "empty string",
			url:  "",
			want: "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractArticul(tt.url)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPickPrice(t *testing.T) {
	t.Run("minimum among sizes", func(t *testing.T) {
		p := &detailProduct{}
		p.Sizes = make([]struct {
			Price *struct {
				Basic   int64 `json:"basic"`
				Product int64 `json:"product"`
			} `json:"price"`
		}, 3)
		p.Sizes[0].Price = &struct {
			Basic   int64 `json:"basic"`
			Product int64 `json:"product"`
		}{Basic: 500000, Product: 300000}
		p.Sizes[1].Price = &struct {
			Basic   int64 `json:"basic"`
			Product int64 `json:"product"`
		}{Basic: 500000, Product: 250000}
		// размер без цены пропускается
		p.Sizes[2].Price = nil

		price, basic, discount := pickPrice(p)
		assert.Equal(t, 2500.0, price)
		assert.Equal(t, 5000.0, basic)
		assert.Equal(t, 50, discount)
	})

	t.Run("no prices", func(t *testing.T) {
		price, basic, discount := pickPrice(&detailProduct{})
		assert.Zero(t, price)
		assert.Zero(t, basic)
		assert.Zero(t, discount)
	})
}

func TestParse_InvalidLink(t *testing.T) {
	client := NewClient(&Config{Timeout: 1}, testLogger())

	product, err := client.Parse(context.Background(), "https://example.com/not-wb")
	require.NoError(t, err)
	assert.False(t, product.Success)
	assert.NotEmpty(t, product.Error)
}

func TestParse_CombinesCardAndDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/info/ru/card.json"):
			io.WriteString(w, `{
				"imt_name": "Кроссовки беговые",
				"description": "Лёгкие кроссовки",
				"selling": {"brand_name": "CDN Brand"},
				"options": [{"name": "Состав", "value": "Текстиль"}]
			}`)
		case strings.HasPrefix(r.URL.Path, "/cards/v4/detail"):
			io.WriteString(w, `{
				"data": {"products": [{
					"brand": "API Brand",
					"supplier": "ООО Поставщик",
					"reviewRating": 4.8,
					"feedbacks": 1200,
					"sizes": [{"price": {"basic": 500000, "product": 250000}}]
				}]}
			}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewClient(&Config{
		CardCDNURL:   srv.URL,
		DetailAPIURL: srv.URL + "/cards/v4/detail",
		Timeout:      2,
	}, testLogger())

	product, err := client.Parse(context.Background(), "https://www.wildberries.ru/catalog/149751046/detail.aspx")
	require.NoError(t, err)
	require.True(t, product.Success)

	assert.Equal(t, "149751046", product.Articul)
	assert.Equal(t, "Кроссовки беговые", product.Name)
	assert.Equal(t, "API Brand", product.Brand, "detail API авторитетнее CDN по бренду")
	assert.Equal(t, "ООО Поставщик", product.Supplier)
	assert.Equal(t, 2500.0, product.Price)
	assert.Equal(t, 5000.0, product.BasicPrice)
	assert.Equal(t, 50, product.Discount)
	assert.Equal(t, 4.8, product.Rating)
	assert.Equal(t, 1200, product.Feedbacks)
	assert.Equal(t, "Текстиль", product.Characteristics["Состав"])
	assert.Contains(t, product.ImageURL, "/vol1497/part149751/149751046/images/big/1.webp")
}

func TestParse_CardUnavailableFallsBackToDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/cards/v4/detail") {
			io.WriteString(w, `{"products": [{
				"brand": "API Brand",
				"rating": 4.1,
				"sizes": [{"price": {"basic": 100000, "product": 100000}}]
			}]}`)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(&Config{
		CardCDNURL:   srv.URL,
		DetailAPIURL: srv.URL + "/cards/v4/detail",
		Timeout:      2,
	}, testLogger())

	product, err := client.Parse(context.Background(), "https://www.wildberries.ru/catalog/149751046/detail.aspx")
	require.NoError(t, err)
	require.True(t, product.Success)

	assert.Empty(t, product.Name)
	assert.Equal(t, "API Brand", product.Brand)
	assert.Equal(t, 4.1, product.Rating, "rating используется если reviewRating отсутствует")
	assert.Equal(t, 1000.0, product.Price)
	assert.Zero(t, product.Discount, "без разницы цен скидки нет")
}

func TestParse_NothingReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(&Config{
		CardCDNURL:   srv.URL,
		DetailAPIURL: srv.URL + "/cards/v4/detail",
		Timeout:      2,
	}, testLogger())

	product, err := client.Parse(context.Background(), "https://www.wildberries.ru/catalog/149751046/detail.aspx")
	require.NoError(t, err)
	assert.False(t, product.Success)
	assert.Equal(t, "149751046", product.Articul)
}
