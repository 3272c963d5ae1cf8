// Package provider implements reconcile.Provider against the Caixa public
// lottery API.
//
// Responses are decoded with gjson: numero, dataApuracao (dd/mm/yyyy),
// dezenas (zero padded strings), acumulado and the faixa 1 entry of
// listaRateioPremio. A 404 or a document without numero/dezenas is reported
// as reconcile.ErrNotYetAvailable; everything else that is not a valid six
// number result becomes a *reconcile.FetchError.
//
// Every call is bounded by Config.TimeoutSeconds and paced by a token bucket
// limiter (Config.RequestsPerSecond, Config.Burst).
package provider
