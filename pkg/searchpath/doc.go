/*
Package searchpath manipulates executable search path values (PATH on most
systems, Path on Windows) without touching the environment of the running
process. Values are computed and handed to child processes explicitly.
*/
package searchpath
