// Package swath implements the spatio-temporal binning kernel that turns
// irregularly-located observation samples (satellite swath pixels with a
// per-scan-line time, per-pixel coordinates and a measured value) into a
// regular (time x x x y) grid of cell means.
//
// Responsibilities: grid geometry and bin indexing, sparse and dense
// accumulation of per-cell counts and sums, normalization of sums to means,
// and materialization of sparse state into dense arrays.
// Key types: Geometry, Swath, SparseGrid, DenseGrid.
//
// The kernel is pure and synchronous. Everything around it (file ingest,
// persistence, rendering) lives in sibling packages and consumes the dense
// or sparse output by the same integer bin indices used during accumulation.
package swath
