package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/iliyamo/ticket-booking/internal/model"
)

// OfferRepo reads discount offers and records redemptions.  Offer
// eligibility itself (window, minimum purchase, usage limit) is
// evaluated in the pricing package; this repository only moves rows.
type OfferRepo struct {
    db *sql.DB
}

// NewOfferRepo returns an OfferRepo bound to the given database.
func NewOfferRepo(db *sql.DB) *OfferRepo { return &OfferRepo{db: db} }

func scanOffer(row interface{ Scan(...interface{}) error }, o *model.Offer) error {
    return row.Scan(
        &o.ID, &o.Code, &o.Title, &o.Description, &o.DiscountType, &o.DiscountValue,
        &o.MinPurchase, &o.MaxDiscount, &o.ValidFrom, &o.ValidUntil,
        &o.UsageLimit, &o.UsedCount, &o.IsActive,
    )
}

const offerColumns = `id, code, title, description, discount_type, discount_value,
                      min_purchase, max_discount, valid_from, valid_until,
                      usage_limit, used_count, is_active`

// GetActiveByCode returns the active offer with the given code.  The
// code is uppercased before lookup so user input is case-insensitive.
// ErrOfferNotFound is returned when no active offer matches; validity
// window and usage checks are left to the evaluator so it can report
// a specific rejection reason.
func (r *OfferRepo) GetActiveByCode(ctx context.Context, code string) (*model.Offer, error) {
    code = strings.ToUpper(strings.TrimSpace(code))
    q := `SELECT ` + offerColumns + ` FROM offers WHERE code = ? AND is_active = 1`
    var o model.Offer
    err := scanOffer(r.db.QueryRowContext(ctx, q, code), &o)
    if err == sql.ErrNoRows {
        return nil, ErrOfferNotFound
    }
    if err != nil {
        return nil, err
    }
    return &o, nil
}

// ListActive returns up to limit offers that are active and inside
// their validity window, soonest-expiring first.  Used for the
// "available offers" strip on the checkout page.
func (r *OfferRepo) ListActive(ctx context.Context, limit int) ([]model.Offer, error) {
    if limit <= 0 {
        limit = 5
    }
    q := `SELECT ` + offerColumns + ` FROM offers
          WHERE is_active = 1
            AND valid_from <= UTC_TIMESTAMP() AND valid_until >= UTC_TIMESTAMP()
          ORDER BY valid_until LIMIT ?`
    rows, err := r.db.QueryContext(ctx, q, limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Offer, 0, limit)
    for rows.Next() {
        var o model.Offer
        if err := scanOffer(rows, &o); err != nil {
            return nil, err
        }
        out = append(out, o)
    }
    return out, rows.Err()
}

// RedeemTx increments the offer's used_count within the commit
// transaction, enforcing the usage limit at write time.  The WHERE
// clause guards against the limit being crossed by a concurrent
// commit; a zero-row update maps to ErrOfferExhausted.
func (r *OfferRepo) RedeemTx(ctx context.Context, tx *sql.Tx, code string) error {
    const q = `UPDATE offers
               SET used_count = used_count + 1
               WHERE code = ? AND is_active = 1
                 AND (usage_limit IS NULL OR used_count < usage_limit)`
    res, err := tx.ExecContext(ctx, q, strings.ToUpper(strings.TrimSpace(code)))
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrOfferExhausted
    }
    return nil
}
