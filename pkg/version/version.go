// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package version

// Version is the version of the module, which is usually set during build time
// via -ldflags.
var Version = "v0.1.0-dev"
