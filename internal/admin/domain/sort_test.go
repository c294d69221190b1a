package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortCatalogResolve(t *testing.T) {
	t.Run("空键回退默认键", func(t *testing.T) {
		key, err := CompanySortCatalog.Resolve("")
		require.NoError(t, err)
		assert.Equal(t, "name", key)
	})

	t.Run("稳定键原样解析", func(t *testing.T) {
		key, err := CompanySortCatalog.Resolve("owner_name")
		require.NoError(t, err)
		assert.Equal(t, "owner_name", key)
	})

	t.Run("韩文标签解析为稳定键", func(t *testing.T) {
		key, err := CompanySortCatalog.Resolve("법인명")
		require.NoError(t, err)
		assert.Equal(t, "name", key)

		key, err = JobPostingSortCatalog.Resolve("공고 제목")
		require.NoError(t, err)
		assert.Equal(t, "title", key)

		key, err = ApplicationSortCatalog.Resolve("지원자명")
		require.NoError(t, err)
		assert.Equal(t, "account_name", key)
	})

	t.Run("未识别但格式合法的键回退默认键", func(t *testing.T) {
		key, err := AccountSortCatalog.Resolve("salary")
		require.NoError(t, err)
		assert.Equal(t, "name", key)
	})

	t.Run("格式非法的键报错", func(t *testing.T) {
		for _, bad := range []string{"name; DROP TABLE", "a-b", "name'", "(name)", "name,email"} {
			_, err := AccountSortCatalog.Resolve(bad)
			require.Error(t, err, "key %q", bad)
			assert.ErrorIs(t, err, ErrInvalidSortKey)
			assert.ErrorIs(t, err, ErrValidation)
		}
	})
}

func TestParseApprovalStatus(t *testing.T) {
	for _, valid := range []string{"PENDING", "APPROVED", "REJECTED"} {
		status, err := ParseApprovalStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, ApprovalStatus(valid), status)
	}

	for _, invalid := range []string{"", "pending", "BOGUS", "Approved"} {
		_, err := ParseApprovalStatus(invalid)
		require.Error(t, err, "input %q", invalid)
		assert.ErrorIs(t, err, ErrInvalidApprovalStatus)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestCascadeError(t *testing.T) {
	cause := errors.New("deadlock")
	err := &CascadeError{Entity: "company", ID: 7, Step: 3, Err: cause}

	assert.Contains(t, err.Error(), "company 7")
	assert.Contains(t, err.Error(), "step 3")
	assert.ErrorIs(t, err, cause)

	var cascadeErr *CascadeError
	require.ErrorAs(t, error(err), &cascadeErr)
	assert.Equal(t, 3, cascadeErr.Step)
}
