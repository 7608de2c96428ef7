/*
Package bootstrap prepares the environment the game is built in and hands
control to the build tool.

A Bootstrapper prepends the MinGW toolchain directory to the search path,
prints a confirmation line and a usage hint line, and, if it was given
arguments, runs the build tool with exactly those arguments. The search path
change is only ever visible to the build tool: it is passed as the child's
environment and used to resolve the tool, while the environment of the
calling process is left untouched.
*/
package bootstrap
