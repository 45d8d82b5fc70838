// Package slug provides tenant slug validation, generation, and the
// slug/routing-alias codec used by the routing layer.
//
// A slug is the externally visible tenant identifier (e.g. "acme-corp");
// the routing alias is the internal identifier selecting the tenant's
// physical database and cache namespace (e.g. "acme_corp"). The two are
// related by a trivial reversible codec (hyphens vs underscores) but are
// stored independently so historical aliases stay stable.
//
// Validation and conversion are deliberately separate: ToAlias and ToSlug
// are total functions that convert any string character-for-character and
// never fail, which keeps them safe on the resolver hot path. Callers that
// need to trust a slug as an identifier must check IsValid first.
//
//	if !slug.IsValid(s) {
//		return slug.ErrInvalidSlug
//	}
//	alias := slug.ToAlias(s)
//
// For every valid slug s, ToSlug(ToAlias(s)) == s, and symmetrically for
// every valid alias.
package slug
