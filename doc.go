// Package mmb implements the cancel-and-wait coordination core of a market
// making bot: single-flight cancellation per client order id, fallback
// reconciliation against unreliable exchange feedback, and post-cancel fill
// verification.
package mmb
