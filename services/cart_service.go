package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"giftbasket_server/catalog"
	"giftbasket_server/database"
	"giftbasket_server/lib"
	"giftbasket_server/structs"
	"giftbasket_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// productFetcher is the slice of CatalogService the cart touches.
type productFetcher interface {
	FetchProduct(ctx context.Context, id int64) (*structs.Product, error)
}

// CartService owns the authoritative cart: durable lines keyed by
// product+variant, quantities clamped to stock, derived totals. All writes
// replace whole rows; a failed mutation leaves the previous state intact.
type CartService struct {
	logger         *gecho.Logger
	db             *database.DB
	catalogService productFetcher
}

func NewCartService(logger *gecho.Logger, db *database.DB, catalogService *CatalogService) *CartService {
	return &CartService{
		logger:         logger,
		db:             db,
		catalogService: catalogService,
	}
}

// AddItem validates the product against the live catalog and merges the
// requested quantity into the cart. A pricing mode that requires a variant
// rejects a missing selection; zero resolved stock rejects the add.
func (cs *CartService) AddItem(ctx context.Context, cartID uuid.UUID, productID int64, sel structs.VariantSelection, quantity int) (*tables.CartLine, error) {
	product, err := cs.catalogService.FetchProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	mode := catalog.ResolvePricingMode(product)
	if mode == structs.PricingModeNone {
		return nil, lib.ErrPriceUnavailable
	}
	if sel.Kind == structs.SelectionNone && mode != structs.PricingModeSingle {
		return nil, lib.ErrNoVariantSelected
	}

	price, err := catalog.ResolvePrice(product, sel)
	if err != nil {
		return nil, err
	}

	stock := catalog.ResolveStock(product, sel)
	if stock.OutOfStock {
		return nil, lib.ErrOutOfStock
	}

	label := catalog.VariantLabel(product, sel)

	var line *tables.CartLine
	err = database.WithRetry(ctx, func() error {
		return cs.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
			existing := new(tables.CartLine)
			err := tx.NewSelect().
				Model(existing).
				Where("cart_id = ?", cartID).
				Where("product_id = ?", productID).
				Where("variant_label = ?", label).
				Scan(ctx)

			switch {
			case err == nil:
				// Same product+variant: grow the existing line,
				// capped to stock, instead of duplicating it.
				existing.Quantity = catalog.ClampQuantity(existing.Quantity+quantity, stock.Available)
				existing.StockCeiling = max(1, stock.Available)
				existing.UnitPrice = price.Selling.Cents()
				existing.UpdatedAt = time.Now()

				if _, err := tx.NewUpdate().
					Model(existing).
					Column("quantity", "stock_ceiling", "unit_price", "updated_at").
					WherePK().
					Exec(ctx); err != nil {
					return err
				}
				line = existing
				return nil

			case errors.Is(err, sql.ErrNoRows):
				count, err := tx.NewSelect().
					Model((*tables.CartLine)(nil)).
					Where("cart_id = ?", cartID).
					Count(ctx)
				if err != nil {
					return err
				}

				fresh := &tables.CartLine{
					Id:           uuid.New(),
					CartId:       cartID,
					ProductId:    productID,
					VariantLabel: label,
					UnitPrice:    price.Selling.Cents(),
					Quantity:     catalog.ClampQuantity(quantity, stock.Available),
					StockCeiling: max(1, stock.Available),
					Position:     count,
					CreatedAt:    time.Now(),
					UpdatedAt:    time.Now(),
				}

				if _, err := tx.NewInsert().Model(fresh).Exec(ctx); err != nil {
					return err
				}
				line = fresh
				return nil

			default:
				return err
			}
		})
	})
	if err != nil {
		cs.logger.Error("Failed to add cart item",
			gecho.Field("cart_id", cartID),
			gecho.Field("product_id", productID),
			gecho.Field("error", err),
		)
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	return line, nil
}

// UpdateQuantity clamps the requested quantity into [1, stock ceiling].
// Zero (or less) removes the line.
func (cs *CartService) UpdateQuantity(ctx context.Context, cartID, lineID uuid.UUID, quantity int) (*tables.CartLine, error) {
	if quantity <= 0 {
		return nil, cs.RemoveLine(ctx, cartID, lineID)
	}

	line := new(tables.CartLine)
	err := database.WithRetry(ctx, func() error {
		return cs.db.NewSelect().
			Model(line).
			Where("id = ?", lineID).
			Where("cart_id = ?", cartID).
			Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lib.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load cart line: %w", err)
	}

	line.Quantity = catalog.ClampQuantity(quantity, line.StockCeiling)
	line.UpdatedAt = time.Now()

	err = database.WithRetry(ctx, func() error {
		_, err := cs.db.NewUpdate().
			Model(line).
			Column("quantity", "updated_at").
			WherePK().
			Exec(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update cart line: %w", err)
	}

	return line, nil
}

// RemoveLine deletes a line. Removing a nonexistent line is a no-op.
func (cs *CartService) RemoveLine(ctx context.Context, cartID, lineID uuid.UUID) error {
	return database.WithRetry(ctx, func() error {
		_, err := cs.db.NewDelete().
			Model((*tables.CartLine)(nil)).
			Where("id = ?", lineID).
			Where("cart_id = ?", cartID).
			Exec(ctx)
		return err
	})
}

// Clear empties the cart. Clearing an empty cart is a no-op.
func (cs *CartService) Clear(ctx context.Context, cartID uuid.UUID) error {
	return database.WithRetry(ctx, func() error {
		_, err := cs.db.NewDelete().
			Model((*tables.CartLine)(nil)).
			Where("cart_id = ?", cartID).
			Exec(ctx)
		return err
	})
}

// GetCart returns the cart's lines in insertion order plus derived totals.
func (cs *CartService) GetCart(ctx context.Context, cartID uuid.UUID) (*structs.CartView, error) {
	lines, err := cs.loadLines(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return cs.buildView(cartID, lines), nil
}

// ReclampCart re-resolves stock for every line against the live catalog
// and rewrites lines whose stored quantity exceeds the fresh ceiling. A
// product that cannot be fetched leaves its line in last-known-good form.
func (cs *CartService) ReclampCart(ctx context.Context, cartID uuid.UUID) (*structs.CartView, error) {
	lines, err := cs.loadLines(ctx, cartID)
	if err != nil {
		return nil, err
	}

	for i := range lines {
		line := &lines[i]

		product, err := cs.catalogService.FetchProduct(ctx, line.ProductId)
		if err != nil {
			cs.logger.Warn("Skipping reclamp for unavailable product",
				gecho.Field("product_id", line.ProductId),
				gecho.Field("error", err),
			)
			continue
		}

		ceiling, clamped, changed := reclampLine(line, product)
		if !changed {
			continue
		}

		line.StockCeiling = ceiling
		line.Quantity = clamped
		line.UpdatedAt = time.Now()

		err = database.WithRetry(ctx, func() error {
			_, err := cs.db.NewUpdate().
				Model(line).
				Column("quantity", "stock_ceiling", "updated_at").
				WherePK().
				Exec(ctx)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to reclamp cart line: %w", err)
		}
	}

	return cs.buildView(cartID, lines), nil
}

func (cs *CartService) loadLines(ctx context.Context, cartID uuid.UUID) ([]tables.CartLine, error) {
	var lines []tables.CartLine
	err := database.WithRetry(ctx, func() error {
		return cs.db.NewSelect().
			Model(&lines).
			Where("cart_id = ?", cartID).
			OrderExpr("position ASC, created_at ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return lines, nil
}

func (cs *CartService) buildView(cartID uuid.UUID, lines []tables.CartLine) *structs.CartView {
	view := &structs.CartView{
		CartID: cartID,
		Lines:  make([]structs.CartLineView, 0, len(lines)),
	}

	for _, line := range lines {
		unit := structs.Money(line.UnitPrice)
		view.Lines = append(view.Lines, structs.CartLineView{
			LineID:       line.Id,
			ProductID:    line.ProductId,
			VariantLabel: line.VariantLabel,
			UnitPrice:    unit,
			Quantity:     line.Quantity,
			StockCeiling: line.StockCeiling,
			LineTotal:    unit.Mul(line.Quantity),
		})
		view.ItemCount += line.Quantity
		view.Total += unit.Mul(line.Quantity)
	}

	return view
}

// reclampLine re-derives a line's stock ceiling and clamped quantity from
// a freshly fetched product. changed reports whether the stored row must
// be rewritten.
func reclampLine(line *tables.CartLine, product *structs.Product) (ceiling, quantity int, changed bool) {
	stock := catalog.ResolveStock(product, selectionFromLabel(product, line.VariantLabel))
	ceiling = max(1, stock.Available)
	quantity = catalog.ClampQuantity(line.Quantity, stock.Available)
	changed = ceiling != line.StockCeiling || quantity != line.Quantity
	return ceiling, quantity, changed
}

// selectionFromLabel rebuilds a variant selection from the label a cart
// line stored. An unknown label on a variant-priced product resolves to
// zero stock downstream, which is the safe direction.
func selectionFromLabel(p *structs.Product, label string) structs.VariantSelection {
	if label == "" {
		return structs.NoSelection()
	}

	for _, size := range p.Sizes {
		if size.Label == label {
			return structs.SelectSize(size.ID)
		}
	}
	for _, opt := range p.WeightOptions {
		if opt.Weight == label {
			return structs.SelectWeight(opt.Weight)
		}
	}

	switch catalog.ResolvePricingMode(p) {
	case structs.PricingModeWeighted:
		return structs.SelectWeight(label)
	case structs.PricingModeSized:
		// Stale size label: a selection that matches nothing resolves
		// to zero stock.
		return structs.SelectSize(-1)
	default:
		return structs.NoSelection()
	}
}
