// Package bets implements bet registration and the persisted bet store.
//
// Store implements reconcile.BetStore on GORM. Bets live in 'bets' (numbers
// as a JSON column, soft deleted) and their outcomes in 'bet_outcomes' keyed
// by (bet_id, draw_number). Outcomes are inserted with ON CONFLICT DO NOTHING
// so the first stored outcome for a draw is final.
//
// # HTTP Endpoints
//
//   - POST   /bets      : register a bet
//   - GET    /bets      : list active bets with outcomes
//   - GET    /bets/:id  : one bet
//   - DELETE /bets/:id  : soft delete a bet
package bets
