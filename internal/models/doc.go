// Sportify - Sports Event Social Platform (Client Core)
// Copyright 2026 Sportify Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/EnzoDV08/sportify-client

// Package models defines the domain types exchanged with the Sportify REST
// API and held in the client-side caches: users, profiles, events, join
// requests, invites, friend relationships, achievements, and notifications.
//
// All types are plain data carriers. Ownership of mutable collections lives
// in the manager packages (social, events, achievements, notify); the API
// facade returns fresh values on every call.
package models
