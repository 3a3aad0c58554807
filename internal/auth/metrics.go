// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Acquisition path labels.
const (
	pathCredentials = "credentials"
	pathToken       = "token"
)

// Acquisition result labels.
const (
	resultSession = "session"
	resultEmpty   = "empty"
	resultError   = "error"
)

var (
	// acquisitionsTotal counts hub session requests by path and result.
	acquisitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hubauth_session_acquisitions_total",
		Help: "Total number of hub session requests by path and result",
	}, []string{"path", "result"})

	// loginsTotal counts login exchanges by status.
	loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hubauth_logins_total",
		Help: "Total number of login exchanges by status",
	}, []string{"status", "source"})

	// logoutsTotal counts logouts by remote result.
	logoutsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hubauth_logouts_total",
		Help: "Total number of logouts by remote result",
	}, []string{"result"})
)

func recordAcquisition(path string, sess Session, err error) {
	result := resultSession
	switch {
	case err != nil:
		result = resultError
	case !sess.Valid():
		result = resultEmpty
	}
	acquisitionsTotal.WithLabelValues(path, result).Inc()
}

func recordLogin(status LoginStatus, source string) {
	loginsTotal.WithLabelValues(status.String(), source).Inc()
}

func recordLogout(err error) {
	if err != nil {
		logoutsTotal.WithLabelValues("error").Inc()
		return
	}
	logoutsTotal.WithLabelValues("ok").Inc()
}
