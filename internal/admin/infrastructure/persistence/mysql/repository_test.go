package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wyfcoding/jobboard/internal/admin/domain"
)

// newTestDB 每个测试一个独立的内存库
// 单连接保证事务与查询落在同一个内存实例上
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.Account{},
		&domain.Resume{},
		&domain.Scrap{},
		&domain.Company{},
		&domain.JobPosting{},
		&domain.Application{},
		&domain.Review{},
		&domain.Comment{},
		&domain.Notice{},
	))
	return db
}

func seedCompanies(t *testing.T, db *gorm.DB) {
	t.Helper()
	companies := []*domain.Company{
		{Name: "한빛물산", OwnerName: "김영수", Phone: "02-111-1111", RegistrationNumber: "110-81-00001", ApprovalStatus: domain.ApprovalPending},
		{Name: "한빛식품", OwnerName: "박지훈", Phone: "02-222-2222", RegistrationNumber: "110-81-00002", ApprovalStatus: domain.ApprovalPending},
		{Name: "두리유통", OwnerName: "이민아", Phone: "02-333-3333", RegistrationNumber: "110-81-00003", ApprovalStatus: domain.ApprovalApproved},
		{Name: "가온테크", OwnerName: "최서준", Phone: "02-444-4444", RegistrationNumber: "110-81-00004", ApprovalStatus: domain.ApprovalPending},
	}
	require.NoError(t, db.Create(&companies).Error)
}

func TestCompanyRepositorySearch(t *testing.T) {
	db := newTestDB(t)
	seedCompanies(t, db)
	repo := NewCompanyRepository(db)
	ctx := context.Background()

	t.Run("多条件 AND 组合，文本子串匹配", func(t *testing.T) {
		companies, err := repo.Search(ctx, domain.CompanyFilter{Name: "한빛", OwnerName: "김"}, domain.SortSpec{}, 0)
		require.NoError(t, err)
		require.Len(t, companies, 1)
		assert.Equal(t, "한빛물산", companies[0].Name)
	})

	t.Run("审核状态精确匹配", func(t *testing.T) {
		companies, err := repo.Search(ctx, domain.CompanyFilter{ApprovalStatus: "APPROVED"}, domain.SortSpec{}, 0)
		require.NoError(t, err)
		require.Len(t, companies, 1)
		assert.Equal(t, "두리유통", companies[0].Name)
	})

	t.Run("空条件返回全部并按默认键排序", func(t *testing.T) {
		companies, err := repo.Search(ctx, domain.CompanyFilter{}, domain.SortSpec{}, 0)
		require.NoError(t, err)
		require.Len(t, companies, 4)
		assert.Equal(t, "가온테크", companies[0].Name)
	})

	t.Run("韩文标签排序键加条数上限", func(t *testing.T) {
		companies, err := repo.Search(ctx,
			domain.CompanyFilter{ApprovalStatus: "PENDING"},
			domain.SortSpec{Key: "법인명", Descending: true}, 2)
		require.NoError(t, err)
		require.Len(t, companies, 2)
		assert.Equal(t, "한빛식품", companies[0].Name)
		assert.Equal(t, "한빛물산", companies[1].Name)
	})

	t.Run("上限大于命中数时全部返回", func(t *testing.T) {
		companies, err := repo.Search(ctx, domain.CompanyFilter{Name: "한빛"}, domain.SortSpec{}, 10)
		require.NoError(t, err)
		assert.Len(t, companies, 2)
	})

	t.Run("非法排序键报错", func(t *testing.T) {
		_, err := repo.Search(ctx, domain.CompanyFilter{}, domain.SortSpec{Key: "name; DROP TABLE companies"}, 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidSortKey)
	})
}

func TestCompanyRepositoryUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	seedCompanies(t, db)
	repo := NewCompanyRepository(db)
	ctx := context.Background()

	company, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, domain.ApprovalPending, company.ApprovalStatus)

	require.NoError(t, repo.UpdateStatus(ctx, 1, domain.ApprovalApproved, company.UpdatedAt))

	company, err = repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalApproved, company.ApprovalStatus)

	// 同值重复写入也是成功
	require.NoError(t, repo.UpdateStatus(ctx, 1, domain.ApprovalApproved, company.UpdatedAt))

	err = repo.UpdateStatus(ctx, 999, domain.ApprovalRejected, company.UpdatedAt)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyRepositoryListPendingAndCounts(t *testing.T) {
	db := newTestDB(t)
	seedCompanies(t, db)
	repo := NewCompanyRepository(db)
	ctx := context.Background()

	pending, err := repo.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 3)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)

	approved, err := repo.CountByStatus(ctx, domain.ApprovalApproved)
	require.NoError(t, err)
	assert.EqualValues(t, 1, approved)
}

func TestJobPostingRepository(t *testing.T) {
	db := newTestDB(t)
	seedCompanies(t, db)
	postings := []*domain.JobPosting{
		{CompanyID: 1, Title: "주말 매장 스태프", Published: true},
		{CompanyID: 1, Title: "물류 보조", Published: true},
		{CompanyID: 3, Title: "홀 서빙", Published: true},
		{CompanyID: 3, Title: "주방 보조", Published: false},
	}
	require.NoError(t, db.Create(&postings).Error)

	repo := NewJobPostingRepository(db)
	ctx := context.Background()

	t.Run("检索行附带企业名称", func(t *testing.T) {
		rows, err := repo.Search(ctx, domain.JobPostingFilter{CompanyName: "두리"}, domain.SortSpec{}, 0)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		for _, row := range rows {
			assert.Equal(t, "두리유통", row.CompanyName)
		}
	})

	t.Run("按公开状态过滤", func(t *testing.T) {
		published := false
		rows, err := repo.Search(ctx, domain.JobPostingFilter{Published: &published}, domain.SortSpec{}, 0)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "주방 보조", rows[0].Title)
	})

	t.Run("切换公开状态", func(t *testing.T) {
		posting, err := repo.Get(ctx, 1)
		require.NoError(t, err)
		require.True(t, posting.Published)

		require.NoError(t, repo.SetPublished(ctx, 1, false, posting.UpdatedAt))
		posting, err = repo.Get(ctx, 1)
		require.NoError(t, err)
		assert.False(t, posting.Published)

		err = repo.SetPublished(ctx, 999, true, posting.UpdatedAt)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("未公开状态写入后原样读回", func(t *testing.T) {
		posting := &domain.JobPosting{CompanyID: 1, Title: "야간 재고 정리", Published: false}
		require.NoError(t, db.Create(posting).Error)

		got, err := repo.Get(ctx, posting.ID)
		require.NoError(t, err)
		assert.False(t, got.Published)

		require.NoError(t, db.Unscoped().Delete(&domain.JobPosting{}, posting.ID).Error)
	})

	t.Run("按企业批量下架不影响他人", func(t *testing.T) {
		posting, err := repo.Get(ctx, 3)
		require.NoError(t, err)
		require.NoError(t, repo.UnpublishByCompany(ctx, 3, posting.UpdatedAt))

		var count int64
		require.NoError(t, db.Model(&domain.JobPosting{}).
			Where("company_id = ? AND published = ?", 3, true).
			Count(&count).Error)
		assert.EqualValues(t, 0, count)

		posting, err = repo.Get(ctx, 2)
		require.NoError(t, err)
		assert.True(t, posting.Published)
	})
}

func TestApplicationRepositorySearch(t *testing.T) {
	db := newTestDB(t)
	seedCompanies(t, db)
	accounts := []*domain.Account{
		{Name: "정다은", Email: "daeun@example.com"},
		{Name: "홍길동", Email: "gildong@example.com"},
	}
	require.NoError(t, db.Create(&accounts).Error)
	postings := []*domain.JobPosting{
		{CompanyID: 1, Title: "주말 매장 스태프", Published: true},
		{CompanyID: 3, Title: "홀 서빙", Published: true},
	}
	require.NoError(t, db.Create(&postings).Error)
	applications := []*domain.Application{
		{AccountID: 1, JobPostingID: 1, ApprovalStatus: domain.ApprovalPending},
		{AccountID: 2, JobPostingID: 2, ApprovalStatus: domain.ApprovalApproved},
	}
	require.NoError(t, db.Create(&applications).Error)

	repo := NewApplicationRepository(db)
	rows, err := repo.Search(context.Background(),
		domain.ApplicationFilter{AccountName: "정"}, domain.SortSpec{Key: "지원자명"}, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "정다은", rows[0].AccountName)
	assert.Equal(t, "한빛물산", rows[0].CompanyName)
	assert.Equal(t, "주말 매장 스태프", rows[0].JobPostingTitle)
}

func TestUnitOfWorkRollback(t *testing.T) {
	db := newTestDB(t)
	seedCompanies(t, db)
	uow := NewUnitOfWork(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := uow.WithinTx(ctx, func(repos domain.Repositories) error {
		if err := repos.Companies.Delete(ctx, 1); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// 回滚后数据原封不动
	repo := NewCompanyRepository(db)
	company, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "한빛물산", company.Name)
}

func TestUnitOfWorkCommit(t *testing.T) {
	db := newTestDB(t)
	seedCompanies(t, db)
	uow := NewUnitOfWork(db)
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(repos domain.Repositories) error {
		return repos.Companies.Delete(ctx, 1)
	})
	require.NoError(t, err)

	repo := NewCompanyRepository(db)
	_, err = repo.Get(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
