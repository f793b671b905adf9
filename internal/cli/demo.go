package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/activerecord"
	"github.com/dmitrymomot/activerecord/pkg/adapter"
	"github.com/dmitrymomot/activerecord/pkg/async"
	"github.com/dmitrymomot/activerecord/pkg/validator"
)

// productModel is the model the demo works with. Its table matches the
// built-in postgres migration.
func productModel(client adapter.Client, log *slog.Logger) *activerecord.Model {
	return activerecord.NewModel("products",
		activerecord.Fields(
			"id", activerecord.Serial,
			"name", activerecord.String,
			"price", activerecord.Number,
			"type", activerecord.String,
			"status", activerecord.String,
		),
		activerecord.WithClient(client),
		activerecord.WithLogger(log),
		activerecord.WithValidation("name", validator.Required(), validator.Format(`\S`, validator.AllowNull(), validator.Message("must not be blank"))),
		activerecord.WithValidation("price", validator.Numeric(validator.AllowNull()), validator.Min(0, validator.AllowNull())),
		activerecord.WithValidation("status", validator.OneOf([]any{"open", "closed"}, validator.AllowNull())),
	)
}

func newDemoCommand(st *state, stdout io.Writer) *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a create, query, update and delete walkthrough on the products table.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := openBackend(ctx, st.settings.Backend, st.log)
			if err != nil {
				return err
			}
			defer b.close()

			return runDemo(ctx, productModel(b.client, st.log), stdout, reset)
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "delete every product before the walkthrough")
	return cmd
}

func runDemo(ctx context.Context, products *activerecord.Model, w io.Writer, reset bool) error {
	p := func(format string, args ...any) { fmt.Fprintf(w, format+"\n", args...) }

	if reset {
		if _, err := products.All().Delete().Execute(ctx); err != nil {
			return err
		}
	}

	created, err := products.Create(ctx, map[string]any{"name": "Widget", "price": 9.99, "type": "tool", "status": "open"})
	if err != nil {
		return err
	}
	widget := created.Record
	p("created %s", describe(widget))

	rejected, err := products.Create(ctx, map[string]any{"price": -1})
	if err != nil {
		return err
	}
	p("rejected: %s", describeErrors(validator.NewResult(rejected.Errors).Err()))

	batch, err := products.CreateMany(ctx, []map[string]any{
		{"name": "Gadget", "price": 24.5, "type": "tool", "status": "open"},
		{"name": "Doohickey", "price": 3.25, "type": "part", "status": "open"},
	})
	if err != nil {
		return err
	}
	for _, rec := range batch {
		p("created %s", describe(rec))
	}

	open, err := products.Where("status", "open").Order("price desc").Load(ctx)
	if err != nil {
		return err
	}
	p("open products by price:")
	for _, rec := range open {
		p("  %s", describe(rec))
	}

	if err := widget.Set("price", 12.5); err != nil {
		return err
	}
	if _, err := widget.Save(ctx); err != nil {
		return err
	}
	p("updated %s", describe(widget))

	res, err := products.Where("price", "<", 10.0).Update(map[string]any{"status": "closed"}).Execute(ctx)
	if err != nil {
		return err
	}
	p("closed %d product(s)", len(adapter.Response{Data: res.Data}.Rows()))

	counts, err := async.WaitAll(
		products.Where("status", "open").Run(ctx),
		products.Where("status", "closed").Run(ctx),
	)
	if err != nil {
		return err
	}
	p("status counts: open=%d closed=%d", counts[0].Len(), counts[1].Len())

	cheap, err := products.GetBy(ctx, map[string]any{"name": "Doohickey"})
	if err != nil {
		return err
	}
	if err := cheap.Delete(ctx); err != nil {
		return err
	}
	p("deleted %s", describe(cheap))

	rest, err := products.All().Order("id").Load(ctx)
	if err != nil {
		return err
	}
	p("remaining: %d", len(rest))
	return nil
}

func describe(rec *activerecord.Record) string {
	return fmt.Sprintf("#%v %v price=%v status=%v", rec.ID(), rec.Get("name"), rec.Get("price"), rec.Get("status"))
}

func describeErrors(err error) string {
	if !validator.IsValidationError(err) {
		return fmt.Sprint(err)
	}
	failures := validator.ExtractValidationErrors(err)
	parts := make([]string, 0, len(failures))
	for _, f := range failures {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return strings.Join(parts, "; ")
}
