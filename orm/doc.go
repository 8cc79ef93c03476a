/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
Each bucket contains only one type of Model that is
stored under a bucket specific key namespace.
*/
package orm
