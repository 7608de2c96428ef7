/*
Package toolchain provides a registry of the native tools the game is built
with: the cargo build tool and the MinGW compiler and debugger it links
through. Tools are looked up on an explicit search path, so the toolchain of
a bootstrapped environment can be inspected without modifying the
environment of the running process.
*/
package toolchain
