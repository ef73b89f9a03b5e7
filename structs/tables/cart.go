package tables

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is one persisted cart line. Lines are keyed by (cart_id,
// product_id, variant_label); adding the same variant again merges into the
// existing line. Position preserves insertion order.
type CartLine struct {
	tableName struct{}  `bun:"table:cart_lines,alias:cl"`
	Id        uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id" validate:"omitempty,uuid4"`
	CartId    uuid.UUID `bun:"cart_id,notnull,type:uuid" json:"cart_id" validate:"required,uuid4"`

	ProductId    int64  `bun:"product_id,notnull" json:"product_id" validate:"required,gt=0"`
	VariantLabel string `bun:"variant_label,notnull,default:''" json:"variant_label,omitempty" validate:"omitempty,max=50"`

	// Snapshot of pricing at the time the line was added
	UnitPrice int64 `bun:"unit_price,notnull" json:"unit_price" validate:"gte=0"` // in cents

	Quantity     int `bun:"quantity,notnull" json:"quantity" validate:"required,min=1"`
	StockCeiling int `bun:"stock_ceiling,notnull,use_zero" json:"stock_ceiling" validate:"gte=0"`
	Position     int `bun:"position,notnull,use_zero" json:"position"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}
