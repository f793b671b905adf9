package activerecord_test

import (
	"github.com/dmitrymomot/activerecord"
	"github.com/dmitrymomot/activerecord/pkg/adapter"
	"github.com/dmitrymomot/activerecord/pkg/logger"
	"github.com/dmitrymomot/activerecord/pkg/validator"
)

func productSchema() activerecord.Schema {
	return activerecord.Fields(
		"id", activerecord.Serial,
		"name", activerecord.String,
		"price", activerecord.Number,
		"type", activerecord.String,
	)
}

func products(c adapter.Client, opts ...activerecord.ModelOption) *activerecord.Model {
	base := []activerecord.ModelOption{
		activerecord.WithClient(c),
		activerecord.WithLogger(logger.Discard()),
		activerecord.WithValidation("name", validator.Required()),
	}
	return activerecord.NewModel("products", productSchema(), append(base, opts...)...)
}
