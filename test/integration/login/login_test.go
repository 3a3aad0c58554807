// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build integration

package login_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/holomush/hubauth/internal/auth"
	hubclient "github.com/holomush/hubauth/internal/hub"
	"github.com/holomush/hubauth/internal/localstore"
)

// newService wires the production stack against the fake hub.
func newService(sessionFile string) (*auth.Service, *localstore.Store) {
	store, err := localstore.New(sessionFile)
	Expect(err).NotTo(HaveOccurred())

	client, err := hubclient.NewClient(hubclient.Config{BaseURL: hub.baseURL(), Timeout: 2 * time.Second})
	Expect(err).NotTo(HaveOccurred())

	backend, err := hubclient.NewBackend(client, store)
	Expect(err).NotTo(HaveOccurred())

	svc, err := auth.NewAuthService(backend, store, auth.NewUserState())
	Expect(err).NotTo(HaveOccurred())
	return svc, store
}

var _ = Describe("Hub login", func() {
	var (
		ctx         context.Context
		sessionFile string
	)

	BeforeEach(func() {
		ctx = context.Background()
		hub.reset()
		sessionFile = filepath.Join(GinkgoT().TempDir(), "session.yaml")
	})

	Describe("Login with credentials", func() {
		It("loads the user and caches the session when asked to", func() {
			svc, store := newService(sessionFile)

			status, err := svc.Login(ctx, auth.Credentials{Email: accountEmail, Password: accountPassword}, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(auth.LoginSuccess))

			state := svc.State()
			Expect(state.IsGuest()).To(BeFalse())
			Expect(state.Email()).To(Equal(accountEmail))
			Expect(state.UUID()).To(Equal(accountUUID))
			Expect(state.AuthHeader()).To(Equal("Bearer " + sessionToken))

			cached, email, err := store.LoadSession(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(cached.AccessToken).To(Equal(sessionToken))
			Expect(email).To(Equal(accountEmail))
		})

		It("falls back to the token when the password is wrong", func() {
			svc, _ := newService(sessionFile)

			status, err := svc.Login(ctx, auth.Credentials{Email: accountEmail, Password: "nope", Token: accountPAT}, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(auth.LoginSuccess))
			Expect(hub.count("POST /api/v1/login")).To(Equal(1))
			Expect(hub.count("POST /api/v1/sdk/login")).To(Equal(1))
			Expect(sessionFile).NotTo(BeAnExistingFile())
		})

		It("reports an acquisition failure and stays a guest", func() {
			svc, _ := newService(sessionFile)

			status, err := svc.Login(ctx, auth.Credentials{Email: accountEmail, Password: "nope"}, true)
			Expect(err).To(MatchError(auth.ErrAcquisition))
			Expect(status).To(Equal(auth.LoginFailed))
			Expect(svc.State().IsGuest()).To(BeTrue())
			Expect(hub.count("GET /api/v1/terminal/user")).To(BeZero())
		})
	})

	Describe("Cached sessions", func() {
		It("logs a later process in without credentials", func() {
			first, _ := newService(sessionFile)
			_, err := first.Login(ctx, auth.Credentials{Token: accountPAT}, true)
			Expect(err).NotTo(HaveOccurred())

			second, _ := newService(sessionFile)
			restored, err := second.Restore(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(restored).To(BeTrue())
			Expect(second.State().UUID()).To(Equal(accountUUID))
			Expect(hub.count("POST /api/v1/sdk/login")).To(Equal(1))
		})

		It("prefers the cached session over supplied credentials", func() {
			first, _ := newService(sessionFile)
			_, err := first.Login(ctx, auth.Credentials{Token: accountPAT}, true)
			Expect(err).NotTo(HaveOccurred())

			second, _ := newService(sessionFile)
			_, err = second.Login(ctx, auth.Credentials{Email: accountEmail, Password: accountPassword}, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(hub.count("POST /api/v1/login")).To(BeZero())
		})

		It("rejects a revoked session without touching the user", func() {
			first, _ := newService(sessionFile)
			_, err := first.Login(ctx, auth.Credentials{Token: accountPAT}, true)
			Expect(err).NotTo(HaveOccurred())
			hub.reset()

			second, _ := newService(sessionFile)
			status, err := second.Login(ctx, auth.Credentials{}, false)
			Expect(err).To(MatchError(auth.ErrLoginRejected))
			Expect(status).To(Equal(auth.LoginFailed))
			Expect(second.State().IsGuest()).To(BeTrue())
		})
	})

	Describe("Hub outages", func() {
		It("reports the hub unreachable when the exchange gets no answer", func() {
			svc, _ := newService(sessionFile)
			_, err := svc.GetSession(ctx, auth.Credentials{Token: accountPAT}, true)
			Expect(err).NotTo(HaveOccurred())

			hub.setDown(true)
			status, err := svc.Login(ctx, auth.Credentials{}, false)
			Expect(status).To(Equal(auth.LoginNoResponse))
			Expect(auth.IsUnreachable(err)).To(BeTrue())
			Expect(svc.State().IsGuest()).To(BeTrue())
		})
	})

	Describe("Logout", func() {
		It("revokes the session, removes the cache and is idempotent", func() {
			svc, _ := newService(sessionFile)
			_, err := svc.Login(ctx, auth.Credentials{Email: accountEmail, Password: accountPassword}, true)
			Expect(err).NotTo(HaveOccurred())

			svc.Logout(ctx)
			Expect(svc.State().IsGuest()).To(BeTrue())
			Expect(hub.isLive(sessionToken)).To(BeFalse())
			Expect(sessionFile).NotTo(BeAnExistingFile())

			svc.Logout(ctx)
			Expect(svc.State().IsGuest()).To(BeTrue())
			Expect(hub.count("POST /api/v1/logout")).To(Equal(1))
		})
	})
})

var _ = Describe("hubauth CLI", func() {
	var (
		ctx      context.Context
		stateDir string
		env      []string
	)

	BeforeEach(func() {
		ctx = context.Background()
		hub.reset()
		stateDir = GinkgoT().TempDir()
		env = append(os.Environ(),
			"XDG_STATE_HOME="+stateDir,
			"XDG_CONFIG_HOME="+GinkgoT().TempDir(),
			"HUBAUTH_HUB_URL="+hub.baseURL(),
		)
	})

	run := func(args ...string) (string, error) {
		cmd := exec.CommandContext(ctx, "go", append([]string{"run", "."}, args...)...)
		cmd.Dir = "../../../cmd/hubauth"
		cmd.Env = env
		out, err := cmd.CombinedOutput()
		return string(out), err
	}

	It("logs in, shows the user and logs out", func() {
		output, err := run("login", "--token", accountPAT, "--keep-session")
		Expect(err).NotTo(HaveOccurred(), "login failed: %s", output)
		Expect(output).To(ContainSubstring("Logged in."))
		Expect(filepath.Join(stateDir, "hubauth", "session.yaml")).To(BeAnExistingFile())

		output, err = run("whoami")
		Expect(err).NotTo(HaveOccurred(), "whoami failed: %s", output)
		Expect(output).To(ContainSubstring("uuid: " + accountUUID))

		output, err = run("logout")
		Expect(err).NotTo(HaveOccurred(), "logout failed: %s", output)
		Expect(filepath.Join(stateDir, "hubauth", "session.yaml")).NotTo(BeAnExistingFile())
	})

	It("explains a rejected login", func() {
		output, err := run("login", "--email", accountEmail, "--password", "nope")
		Expect(err).To(HaveOccurred())
		Expect(output).To(ContainSubstring("Invalid email, password or token."))
	})
})
