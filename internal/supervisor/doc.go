// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

/*
Package supervisor builds the suture service tree that runs the
application.

Layout:

	feelgive (root)
	├── cache-layer
	│   └── cache-janitor  (periodic expired-entry sweep)
	└── api-layer
	    └── http-server    (the Chi router behind http.Server)

Each layer is its own supervisor, so a crashing janitor is restarted
with backoff while the HTTP server keeps serving, and a crashing HTTP
server never disturbs the sweep loop. Supervisor events are logged
through slog via sutureslog.
*/
package supervisor
