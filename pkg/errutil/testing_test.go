// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package errutil_test

import (
	"errors"
	"testing"

	"github.com/samber/oops"

	"github.com/holomush/hubauth/pkg/errutil"
)

func TestAssertErrorCode_MatchingCode(t *testing.T) {
	err := oops.Code("MY_CODE").Errorf("test error")
	// Should not fail
	errutil.AssertErrorCode(t, err, "MY_CODE")
}

func TestAssertErrorContext_MatchingKeyValue(t *testing.T) {
	err := oops.With("user_id", "123").Errorf("test error")
	// Should not fail
	errutil.AssertErrorContext(t, err, "user_id", "123")
}

func TestAssertErrorCode_WrappedSentinel(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := oops.Code("WRAPPED").With("attempt", 2).Wrap(sentinel)
	errutil.AssertErrorCode(t, err, "WRAPPED")
	errutil.AssertErrorContext(t, err, "attempt", 2)
}
