// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"

	"github.com/mileusna/useragent"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for request data.
const (
	ContextKeyRequestPath ContextKey = "request_path"
	ContextKeyDevice      ContextKey = "device"
)

// Device classes derived from the User-Agent header.
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceBot     = "bot"
)

// RequestPath creates middleware that stores the request path in the context.
// The logging handler reads it to tag records with the URL.
func RequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ContextKeyRequestPath, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestPath retrieves the request path from the context.
func GetRequestPath(ctx context.Context) string {
	path, ok := ctx.Value(ContextKeyRequestPath).(string)
	if !ok {
		return ""
	}
	return path
}

// Device classifies the client from its User-Agent and stores the class in the context.
func Device(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ContextKeyDevice, deviceClass(r.UserAgent()))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetDevice returns the device class stored by Device, or DeviceDesktop.
func GetDevice(ctx context.Context) string {
	device, ok := ctx.Value(ContextKeyDevice).(string)
	if !ok || device == "" {
		return DeviceDesktop
	}
	return device
}

func deviceClass(uaString string) string {
	if uaString == "" {
		return DeviceDesktop
	}

	ua := useragent.Parse(uaString)
	switch {
	case ua.Bot:
		return DeviceBot
	case ua.Tablet:
		return DeviceTablet
	case ua.Mobile:
		return DeviceMobile
	default:
		return DeviceDesktop
	}
}
