/*
Package gconf provides a toolset for managing an extension configuration.

Each extension keeps a single configuration instance in the database under
the "_c:<package name>" key. The initial value is read from the genesis file
("conf" section) and later changes are done by the configuration owner using
an update message that carries a patch of the configuration.
*/
package gconf
