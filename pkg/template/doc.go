// Package template defines the normalized template record produced by the
// loader, the raw map shape templates are declared with, and the error
// taxonomy shared by every loader stage. Implementations of the pipeline live
// under internal/ and only exchange the types declared here.
package template
