// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package contacts handles lead capture and contact-to-poll linking.

# Store

Store persists contacts, tags (deduplicated by name), and an append-only
interaction log. Contacts are created from the contact form with a salted ip
hash and a shareable uid; status moves freely through the lifecycle
(new → contacted → qualified/closed) with each change logged.

# Linking

Linker.Link runs after a contact is durably created. It finds earlier
anonymous poll responses with the same ip hash (or the client token the form
carried), stamps the contact's uid on them, tags the contact
"poll-participant", and records how many responses were matched.

Linking is strictly best-effort: a broken link step logs and returns — it can
never fail the contact creation it follows. The complementary direction is
handled at vote time: if a contact already exists when a response is created,
the recorder stamps contact_uid immediately and Link finds nothing to do.
*/
package contacts
