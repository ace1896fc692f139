package member

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unicpatent/unic-ip/internal/config"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/logging"
	"github.com/unicpatent/unic-ip/pkg/errors"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "member.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newVerifier(path string) *Verifier {
	return NewVerifier(config.MemberConfig{RosterPath: path}, logging.NewNopLogger())
}

func TestVerify_KnownMember(t *testing.T) {
	path := writeRoster(t, `{"members":[
		{"customerNumber":"120190612244","name":"주식회사 유니크"},
		{"customerNumber":"120200098765","name":"김철수"}
	]}`)

	m, err := newVerifier(path).Verify(context.Background(), "120200098765")
	require.NoError(t, err)
	assert.Equal(t, "김철수", m.Name)
	assert.Equal(t, "120200098765", m.CustomerNumber)
}

func TestVerify_UnknownMember(t *testing.T) {
	path := writeRoster(t, `{"members":[{"customerNumber":"120190612244","name":"주식회사 유니크"}]}`)

	_, err := newVerifier(path).Verify(context.Background(), "999999999999")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeMemberNotFound))
}

func TestVerify_EmptyCustomerNumber(t *testing.T) {
	path := writeRoster(t, `{"members":[]}`)

	_, err := newVerifier(path).Verify(context.Background(), "  ")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeValidation))
}

func TestVerify_MissingRosterFile(t *testing.T) {
	_, err := newVerifier(filepath.Join(t.TempDir(), "absent.json")).Verify(context.Background(), "120190612244")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeMemberRosterLoad))
}

func TestVerify_MalformedRoster(t *testing.T) {
	path := writeRoster(t, `{"members": not-json`)

	_, err := newVerifier(path).Verify(context.Background(), "120190612244")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeMemberRosterLoad))
}

func TestVerify_RosterEditsTakeEffect(t *testing.T) {
	path := writeRoster(t, `{"members":[]}`)
	v := newVerifier(path)

	_, err := v.Verify(context.Background(), "120190612244")
	assert.True(t, errors.IsCode(err, errors.CodeMemberNotFound))

	require.NoError(t, os.WriteFile(path,
		[]byte(`{"members":[{"customerNumber":"120190612244","name":"주식회사 유니크"}]}`), 0o600))

	m, err := v.Verify(context.Background(), "120190612244")
	require.NoError(t, err)
	assert.Equal(t, "주식회사 유니크", m.Name)
}
