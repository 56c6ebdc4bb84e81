// Package discount models code-bearing price reductions.
//
// A discount's kind fixes its value policy: loyalty, promotional, and
// welcome codes are percentages of the subtotal; special-event and
// referral codes are fixed amounts in cents. Promotional, welcome, and
// referral codes are single-use.
//
// Applying a discount during quoting is side-effect-free: AmountFor never
// mutates state, so quotes are idempotent and repeatable. Consuming a
// code via MarkUsed is the payment-confirmation step's responsibility.
package discount
