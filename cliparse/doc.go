// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first (via godotenv) so local
development doesn't need exported variables.

# Config Fields

  - Port: Server listen port (default: 3000)
  - DatabaseURL: Connection string (required)
  - DatabaseDriver: "postgres" (default) or "sqlite"
  - IPHashSalt: Secret for voter IP hashing (required)
  - AdminKey: Shared key for the admin dashboard (required)
  - SeedFile: JSON file of poll definitions ensured at startup (optional)

# CLI Flags

	-p          Server port
	-d          Database URL
	-t          Database driver
	-seed       Poll seed file
	-ip-salt    IP hash salt
	-admin-key  Dashboard admin key

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_DRIVER → -t
	SEED_FILE       → -seed
	IP_HASH_SALT    → -ip-salt
	ADMIN_KEY       → -admin-key

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - IP_HASH_SALT must be provided
  - ADMIN_KEY must be provided
*/
package cliparse
