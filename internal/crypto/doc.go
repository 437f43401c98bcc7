// Package crypto collects cryptocurrency prices. It samples a batched
// price endpoint over several rounds, deduplicates the observations, and
// classifies each sample against configured alert bounds.
package crypto
