// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

/*
Package auth guards the API's maintenance surface.

The recommendation endpoints are anonymous; only destructive
operations (cache invalidation) require a credential. Two schemes are
supported, configured through the security section:

  - a static operator token verified against a bcrypt hash
  - a short-lived HS256 maintenance JWT

With neither configured the maintenance endpoints are disabled, which
is the safe default for single-operator deployments.
*/
package auth
