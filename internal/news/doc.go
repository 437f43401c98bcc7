// Package news scrapes article listings and bodies from the configured
// news site. Listing pages are located with an ordered CSS selector chain,
// article bodies with a second chain, and each body is cleaned, previewed,
// and summarized into the record fields.
package news
