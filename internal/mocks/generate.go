// Package mocks provides gomock implementations of the portal's ports.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	backend := mocks.NewMockEventBackend(ctrl)
//	backend.EXPECT().GetEvent(gomock.Any(), "token", "e1").Return(event, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_store_mock.go github.com/memberhub/portal/internal/ports SessionStore
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=auth_backend_mock.go github.com/memberhub/portal/internal/ports AuthBackend
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=event_backend_mock.go github.com/memberhub/portal/internal/ports EventBackend
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=member_backend_mock.go github.com/memberhub/portal/internal/ports MemberBackend
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=announcement_backend_mock.go github.com/memberhub/portal/internal/ports AnnouncementBackend
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=message_backend_mock.go github.com/memberhub/portal/internal/ports MessageBackend
