// Package stripe probes the payments API: the configured price must be
// retrievable and must resolve to a product with an identifier.
package stripe

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	stripeapi "github.com/stripe/stripe-go/v81"
	stripeclient "github.com/stripe/stripe-go/v81/client"

	"github.com/jhouston2019/auditresponse.ai/internal/core/check"
)

type Probe struct {
	NameValue string
	SecretKey string
	PriceID   string
	Timeout   time.Duration
	// Backend overrides the API backend, used by tests.
	Backend stripeapi.Backend
}

func (p *Probe) Name() string {
	return p.NameValue
}

func (p *Probe) Probe(ctx context.Context) check.Result {
	if strings.TrimSpace(p.SecretKey) == "" {
		return check.Fail(p.NameValue, check.KindConfigMissing, "STRIPE_SECRET_KEY not set")
	}
	if strings.TrimSpace(p.PriceID) == "" {
		return check.Fail(p.NameValue, check.KindConfigMissing, "STRIPE_PRICE_RESPONSE not set")
	}

	backend := p.Backend
	if backend == nil {
		backend = stripeapi.GetBackendWithConfig(stripeapi.APIBackend, &stripeapi.BackendConfig{
			HTTPClient:    &http.Client{Timeout: p.Timeout},
			LeveledLogger: &stripeapi.LeveledLogger{Level: stripeapi.LevelError},
		})
	}
	sc := &stripeclient.API{}
	sc.Init(p.SecretKey, &stripeapi.Backends{API: backend})

	price, err := sc.Prices.Get(p.PriceID, &stripeapi.PriceParams{
		Params: stripeapi.Params{Context: ctx},
	})
	if err != nil {
		return failFromErr(p.NameValue, err)
	}
	if price == nil || price.Product == nil || price.Product.ID == "" {
		return check.Fail(p.NameValue, check.KindBadResponse, "no product returned")
	}

	product := price.Product
	if product.Name == "" {
		// Price referenced the product by ID only; fetch the full object.
		product, err = sc.Products.Get(price.Product.ID, &stripeapi.ProductParams{
			Params: stripeapi.Params{Context: ctx},
		})
		if err != nil {
			return failFromErr(p.NameValue, err)
		}
	}
	if product == nil || product.ID == "" {
		return check.Fail(p.NameValue, check.KindBadResponse, "no product returned")
	}
	return check.Pass(p.NameValue, "price "+price.ID+" -> product "+product.ID)
}

func failFromErr(name string, err error) check.Result {
	var sErr *stripeapi.Error
	if errors.As(err, &sErr) && sErr.Msg != "" {
		return check.Fail(name, check.KindBadResponse, sErr.Msg)
	}
	return check.Fail(name, check.KindNetworkError, err.Error())
}
