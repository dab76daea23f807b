// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package resources provides the user-facing API for Azure singleton tracked
// resources.
//
// The [SingletonTrackedResources] façade adapts an [InnerClient], which speaks
// in terms of wire records ([models.SingletonTrackedResourceInner]), into an
// API which returns [SingletonTrackedResource] values. Each such value carries
// a reference to the [Manager] it was obtained from, which can be used to
// navigate to sibling services.
//
// The façade adds no behaviour of its own. Errors from the inner client are
// returned unchanged, a nil record from the inner client results in a nil
// resource, and the [context.Context] of each call is handed to the inner
// client as is, so cancellation, deadlines and per-call headers are honoured
// by the inner client.
//
// Pagers and iterators returned by the façade are not safe for concurrent
// use, which matches the [runtime.Pager] values of the inner client.
package resources
