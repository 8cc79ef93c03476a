/*
Package utils contains decorators that are not bound to any extension:
panic recovery, logging, metrics, action tagging and savepoints.
*/
package utils
