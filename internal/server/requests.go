package server

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/matthieukhl/shopfront/internal/models"
	"github.com/matthieukhl/shopfront/internal/service"
)

type customerRequest struct {
	Name    string `json:"name" binding:"required,max=50"`
	Address string `json:"address" binding:"max=120"`
	City    string `json:"city" binding:"max=30"`
	Country string `json:"country" binding:"max=20"`
}

func (r customerRequest) input() service.CustomerInput {
	return service.CustomerInput{
		Name:    r.Name,
		Address: r.Address,
		City:    r.City,
		Country: r.Country,
	}
}

type productRequest struct {
	ProductName string `json:"product_name" binding:"required,max=100"`
}

// availabilityRequest has no binding rules and keeps every field raw: the
// unit price check has to run before the presence check on the ids, so a
// malformed id must not fail binding.
type availabilityRequest struct {
	ProductID  json.RawMessage `json:"prod_id"`
	SupplierID json.RawMessage `json:"supp_id"`
	UnitPrice  json.RawMessage `json:"unit_price"`
}

// input passes ids that are not positive JSON integers as missing.
func (r availabilityRequest) input() service.AvailabilityInput {
	return service.AvailabilityInput{
		ProductID:  rawID(r.ProductID),
		SupplierID: rawID(r.SupplierID),
		UnitPrice:  r.UnitPrice,
	}
}

func rawID(raw json.RawMessage) int64 {
	id, err := strconv.ParseInt(string(bytes.TrimSpace(raw)), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

type orderRequest struct {
	OrderDate      string `json:"order_date" binding:"required,isodate"`
	OrderReference string `json:"order_reference" binding:"required,max=10"`
}

// input assumes the request passed binding, so the date parses.
func (r orderRequest) input() service.OrderInput {
	date, _ := time.Parse(models.DateLayout, r.OrderDate)
	return service.OrderInput{
		OrderDate:      date,
		OrderReference: r.OrderReference,
	}
}

var registerOnce sync.Once

// registerValidations reports fields by their JSON names and adds the
// isodate rule to gin's validator.
func registerValidations() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(models.DateLayout, fl.Field().String())
			return err == nil
		})
	})
}
