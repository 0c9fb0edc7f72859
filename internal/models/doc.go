// Package models defines the core domain models for the trip ledger.
//
// # Models
//
//   - Member / Roster: the fixed set of trip members who can pay or owe
//   - ExpenseEntry: one expense paid by a member and shared by a subset
//     of the roster
//   - User: a registered account allowed to mutate the ledger
//
// # Design Principles
//
//  1. The roster is configuration, not user data. It is loaded once at
//     startup and never changes at runtime; every computation is keyed
//     by roster member rather than by hardcoded fields so the roster
//     size is not baked into any algorithm.
//  2. Amounts are int64 in the smallest currency unit. Shares are
//     computed by floor division; the rounding slack this produces is a
//     documented property of the ledger, not something models hide.
//  3. Models carry no derived state. Balances, category totals and
//     settlements are pure functions of the entry collection and live
//     in the calculator package.
package models
