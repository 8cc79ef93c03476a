/*
Package x contains the extensions of the escrow application.

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together in the app package to construct
an application.

This package holds the authentication helpers shared by all
extensions. Handlers receive an Authenticator in their constructor
so that the signature scheme can be replaced in tests.
*/
package x
