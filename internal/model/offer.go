package model

import "time"

// Discount type constants stored in offers.discount_type.
const (
    DiscountTypePercentage = "percentage"
    DiscountTypeFixed      = "fixed"
)

// Offer is a discount code with eligibility rules.  The booking flow
// reads offers when validating a code and increments UsedCount inside
// the commit transaction when a code is redeemed.
//
// Fields:
//  ID            – primary key identifier.
//  Code          – uppercased redemption code, unique.
//  Title         – short marketing title.
//  Description   – optional longer description.
//  DiscountType  – percentage or fixed.
//  DiscountValue – percent (0-100) or fixed amount in cents.
//  MinPurchase   – minimum order total in cents; zero disables.
//  MaxDiscount   – cap in cents for percentage offers (nullable).
//  ValidFrom     – start of the validity window, inclusive.
//  ValidUntil    – end of the validity window, inclusive.
//  UsageLimit    – maximum redemptions (nullable = unlimited).
//  UsedCount     – redemptions so far.
//  IsActive      – whether the offer can be applied.
type Offer struct {
    ID            uint64    // offers.id
    Code          string    // offers.code
    Title         string    // offers.title
    Description   *string   // offers.description (nullable)
    DiscountType  string    // offers.discount_type
    DiscountValue uint32    // offers.discount_value
    MinPurchase   uint32    // offers.min_purchase
    MaxDiscount   *uint32   // offers.max_discount (nullable)
    ValidFrom     time.Time // offers.valid_from
    ValidUntil    time.Time // offers.valid_until
    UsageLimit    *uint32   // offers.usage_limit (nullable)
    UsedCount     uint32    // offers.used_count
    IsActive      bool      // offers.is_active
}
