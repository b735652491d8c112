/*
Package testutil provides common test utilities.

Internal package with helper functions for testing numerical computations
and floating-point comparisons. Not intended for external use.
*/
package testutil
