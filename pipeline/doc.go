// SPDX-License-Identifier: MIT

// Package pipeline runs the generate → assemble → solve sequence on one or
// more workers and reports time, objective and residual per variant.
package pipeline
