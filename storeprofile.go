// Package storeprofile builds a normalized business profile of an online
// storefront from its public pages: catalog, contact channels, social
// presence, policy documents and FAQ content.
//
// This package contains domain types, interfaces and the pure extraction
// heuristics following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., http/, goquery/, sqlite/, gin/).
package storeprofile
