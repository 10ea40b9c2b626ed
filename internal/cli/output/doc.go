// Package output renders command results for keyman.
//
// Listings default to a bordered grid (one row per key, creation order);
// json and yaml emit the records themselves for scripting.
package output
