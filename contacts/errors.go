// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package contacts

import "errors"

var ErrContactNotFound = errors.New("contact not found")
