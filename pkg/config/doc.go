/*
Package config loads the settings of the paclike tools.

Settings are layered, each layer overriding the previous one:

 1. built-in defaults (the MSYS2 MinGW-w64 toolchain and cargo),
 2. a TOML file: the one given explicitly, or devenv.toml in the working
    directory, or $XDG_CONFIG_HOME/paclike/devenv.toml,
 3. PACLIKE_* environment variables, where a double underscore separates
    nested keys (PACLIKE_TOOLCHAIN__DIR sets toolchain.dir),
 4. command line flags.

A config file looks like this:

	tool = "cargo"
	hints = ["cargo build", "cargo run --release"]

	[toolchain]
	dir = 'C:\msys64\mingw64\bin'
	path_var = "PATH"
*/
package config
