package application_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/wyfcoding/jobboard/internal/admin/application"
	"github.com/wyfcoding/jobboard/internal/admin/domain"
	"github.com/wyfcoding/jobboard/internal/admin/infrastructure/persistence/mysql"
)

var (
	adminActor = domain.Identity{AccountID: 100, Name: "운영자", IsAdmin: true}
	userActor  = domain.Identity{AccountID: 1, Name: "정다은", IsAdmin: false}
)

// memoryPublisher 记录发布过的事件，供断言用
type memoryPublisher struct {
	topics []string
}

func (p *memoryPublisher) Publish(ctx context.Context, topic, key string, event any) error {
	p.topics = append(p.topics, topic)
	return nil
}

func (p *memoryPublisher) published(topic string) bool {
	for _, t := range p.topics {
		if t == topic {
			return true
		}
	}
	return false
}

// memoryStatsCache 进程内 StatsCache 实现
type memoryStatsCache struct {
	data map[string][]byte
}

func newMemoryStatsCache() *memoryStatsCache {
	return &memoryStatsCache{data: map[string][]byte{}}
}

func (c *memoryStatsCache) GetJSON(ctx context.Context, key string, dest any) error {
	raw, ok := c.data[key]
	if !ok {
		return errors.New("cache miss")
	}
	return json.Unmarshal(raw, dest)
}

func (c *memoryStatsCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

type fixture struct {
	db        *gorm.DB
	svc       *application.AdminService
	publisher *memoryPublisher
	cache     *memoryStatsCache
}

// newFixture 搭建内存库上的完整门面
// 数据集覆盖两名求职者与两家企业，账号 1 与企业 1 持有全量关联数据
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.Account{}, &domain.Resume{}, &domain.Scrap{},
		&domain.Company{}, &domain.JobPosting{}, &domain.Application{},
		&domain.Review{}, &domain.Comment{}, &domain.Notice{},
	))

	require.NoError(t, db.Create([]*domain.Account{
		{Name: "정다은", Email: "daeun@example.com", Phone: "010-1111-2222"},
		{Name: "홍길동", Email: "gildong@example.com", Phone: "010-3333-4444"},
	}).Error)
	require.NoError(t, db.Create([]*domain.Company{
		{Name: "한빛물산", OwnerName: "김영수", RegistrationNumber: "110-81-00001", ApprovalStatus: domain.ApprovalPending},
		{Name: "두리유통", OwnerName: "이민아", RegistrationNumber: "110-81-00002", ApprovalStatus: domain.ApprovalApproved},
	}).Error)
	require.NoError(t, db.Create([]*domain.JobPosting{
		{CompanyID: 1, Title: "주말 매장 스태프", Published: true},
		{CompanyID: 1, Title: "물류 보조", Published: true},
		{CompanyID: 2, Title: "홀 서빙", Published: true},
	}).Error)
	require.NoError(t, db.Create([]*domain.Resume{
		{AccountID: 1, Title: "성실한 지원자입니다"},
	}).Error)
	require.NoError(t, db.Create([]*domain.Scrap{
		{AccountID: 1, JobPostingID: 1},
		{AccountID: 2, JobPostingID: 3},
	}).Error)
	require.NoError(t, db.Create([]*domain.Application{
		{AccountID: 1, JobPostingID: 1, ApprovalStatus: domain.ApprovalPending},
		{AccountID: 1, JobPostingID: 3, ApprovalStatus: domain.ApprovalApproved},
		{AccountID: 2, JobPostingID: 3, ApprovalStatus: domain.ApprovalPending},
	}).Error)
	require.NoError(t, db.Create([]*domain.Review{
		{AccountID: 1, CompanyID: 1, Title: "분위기 좋아요", Content: "추천합니다"},
		{AccountID: 2, CompanyID: 2, Title: "무난합니다", Content: ""},
	}).Error)
	require.NoError(t, db.Create([]*domain.Comment{
		{ReviewID: 1, AccountID: 2, Content: "저도 동감해요"},
		{ReviewID: 2, AccountID: 1, Content: "감사합니다"},
	}).Error)

	publisher := &memoryPublisher{}
	statsCache := newMemoryStatsCache()
	svc := application.NewAdminService(
		mysql.NewRepositories(db),
		mysql.NewUnitOfWork(db),
		publisher,
		statsCache,
		nil,
	)
	return &fixture{db: db, svc: svc, publisher: publisher, cache: statsCache}
}

func (f *fixture) count(t *testing.T, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func TestFacadeRejectsNonAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.SearchAccounts(ctx, userActor, domain.AccountFilter{}, domain.SortSpec{}, 0)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.svc.GetDashboardStats(ctx, userActor)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// 权限检查先于一切校验与写入
	err = f.svc.SetCompanyApprovalStatus(ctx, userActor, 1, "BOGUS")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = f.svc.DeleteAccountCascade(ctx, userActor, 1)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.EqualValues(t, 1, f.count(t, &domain.Account{}, "id = ?", 1))

	// 匿名调用者同样拒绝
	_, err = f.svc.GetCompany(ctx, domain.Identity{}, 1)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSetCompanyApprovalStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.SetCompanyApprovalStatus(ctx, adminActor, 1, "APPROVED"))
	company, err := f.svc.GetCompany(ctx, adminActor, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalApproved, company.ApprovalStatus)
	assert.True(t, f.publisher.published("admin.company.status_changed"))

	t.Run("同状态重复提交仍然成功", func(t *testing.T) {
		require.NoError(t, f.svc.SetCompanyApprovalStatus(ctx, adminActor, 1, "APPROVED"))
		company, err := f.svc.GetCompany(ctx, adminActor, 1)
		require.NoError(t, err)
		assert.Equal(t, domain.ApprovalApproved, company.ApprovalStatus)
	})

	t.Run("任意方向迁移均允许", func(t *testing.T) {
		require.NoError(t, f.svc.SetCompanyApprovalStatus(ctx, adminActor, 1, "REJECTED"))
		require.NoError(t, f.svc.SetCompanyApprovalStatus(ctx, adminActor, 1, "PENDING"))
	})

	t.Run("非法状态串不产生任何写入", func(t *testing.T) {
		before, err := f.svc.GetCompany(ctx, adminActor, 2)
		require.NoError(t, err)

		err = f.svc.SetCompanyApprovalStatus(ctx, adminActor, 2, "BOGUS")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidApprovalStatus)

		after, err := f.svc.GetCompany(ctx, adminActor, 2)
		require.NoError(t, err)
		assert.Equal(t, before.ApprovalStatus, after.ApprovalStatus)
	})

	t.Run("目标企业不存在", func(t *testing.T) {
		err := f.svc.SetCompanyApprovalStatus(ctx, adminActor, 999, "APPROVED")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestSetJobPostingPublished(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.SetJobPostingPublished(ctx, adminActor, 1, false))
	posting, err := f.svc.GetJobPosting(ctx, adminActor, 1)
	require.NoError(t, err)
	assert.False(t, posting.Published)
	assert.True(t, f.publisher.published("admin.job_posting.publish_changed"))

	require.NoError(t, f.svc.SetJobPostingPublished(ctx, adminActor, 1, true))
	posting, err = f.svc.GetJobPosting(ctx, adminActor, 1)
	require.NoError(t, err)
	assert.True(t, posting.Published)

	err = f.svc.SetJobPostingPublished(ctx, adminActor, 999, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSoftDelistCompanyJobPostings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.SoftDelistCompanyJobPostings(ctx, adminActor, 1))

	// 目标企业全部下架但记录仍在，他人职位不受影响
	assert.EqualValues(t, 0, f.count(t, &domain.JobPosting{}, "company_id = ? AND published = ?", 1, true))
	assert.EqualValues(t, 2, f.count(t, &domain.JobPosting{}, "company_id = ?", 1))
	assert.EqualValues(t, 1, f.count(t, &domain.JobPosting{}, "company_id = ? AND published = ?", 2, true))

	err := f.svc.SoftDelistCompanyJobPostings(ctx, adminActor, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteAccountCascade(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.DeleteAccountCascade(ctx, adminActor, 1))

	// 账号 1 及其全部关联数据清空
	assert.EqualValues(t, 0, f.count(t, &domain.Account{}, "id = ?", 1))
	assert.EqualValues(t, 0, f.count(t, &domain.Resume{}, "account_id = ?", 1))
	assert.EqualValues(t, 0, f.count(t, &domain.Scrap{}, "account_id = ?", 1))
	assert.EqualValues(t, 0, f.count(t, &domain.Application{}, "account_id = ?", 1))
	assert.EqualValues(t, 0, f.count(t, &domain.Review{}, "account_id = ?", 1))
	assert.EqualValues(t, 0, f.count(t, &domain.Comment{}, "account_id = ?", 1))

	// 账号 2 的数据原样保留
	assert.EqualValues(t, 1, f.count(t, &domain.Account{}, "id = ?", 2))
	assert.EqualValues(t, 1, f.count(t, &domain.Scrap{}, "account_id = ?", 2))
	assert.EqualValues(t, 1, f.count(t, &domain.Application{}, "account_id = ?", 2))

	assert.True(t, f.publisher.published("admin.account.deleted"))

	err := f.svc.DeleteAccountCascade(ctx, adminActor, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteCompanyCascade(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.DeleteCompanyCascade(ctx, adminActor, 1))

	// 企业 1 及其职位、职位收到的申请与收藏、评价与留言全部清空
	assert.EqualValues(t, 0, f.count(t, &domain.Company{}, "id = ?", 1))
	assert.EqualValues(t, 0, f.count(t, &domain.JobPosting{}, "company_id = ?", 1))
	assert.EqualValues(t, 0, f.count(t, &domain.Application{}, "job_posting_id IN (?, ?)", 1, 2))
	assert.EqualValues(t, 0, f.count(t, &domain.Scrap{}, "job_posting_id IN (?, ?)", 1, 2))
	assert.EqualValues(t, 0, f.count(t, &domain.Review{}, "company_id = ?", 1))
	assert.EqualValues(t, 0, f.count(t, &domain.Comment{}, "review_id = ?", 1))

	// 账号本身与他企数据不受影响
	assert.EqualValues(t, 2, f.count(t, &domain.Account{}, "1 = 1"))
	assert.EqualValues(t, 1, f.count(t, &domain.Company{}, "id = ?", 2))
	assert.EqualValues(t, 1, f.count(t, &domain.JobPosting{}, "company_id = ?", 2))
	assert.EqualValues(t, 1, f.count(t, &domain.Review{}, "company_id = ?", 2))

	assert.True(t, f.publisher.published("admin.company.deleted"))
}

var errInjected = errors.New("injected storage failure")

// failingReviewRepository 在删除步骤注入故障
type failingReviewRepository struct {
	domain.ReviewRepository
}

func (r failingReviewRepository) DeleteByAccount(ctx context.Context, accountID uint) error {
	return errInjected
}

func (r failingReviewRepository) DeleteByCompany(ctx context.Context, companyID uint) error {
	return errInjected
}

// faultUnitOfWork 包装真实工作单元，把评价仓储换成注入故障的实现
type faultUnitOfWork struct {
	inner domain.UnitOfWork
}

func (u faultUnitOfWork) WithinTx(ctx context.Context, fn func(domain.Repositories) error) error {
	return u.inner.WithinTx(ctx, func(repos domain.Repositories) error {
		repos.Reviews = failingReviewRepository{repos.Reviews}
		return fn(repos)
	})
}

func TestCascadeRollsBackOnStepFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	publisher := &memoryPublisher{}
	svc := application.NewAdminService(
		mysql.NewRepositories(f.db),
		faultUnitOfWork{inner: mysql.NewUnitOfWork(f.db)},
		publisher,
		nil,
		nil,
	)

	err := svc.DeleteAccountCascade(ctx, adminActor, 1)
	require.Error(t, err)

	var cascadeErr *domain.CascadeError
	require.ErrorAs(t, err, &cascadeErr)
	assert.Equal(t, "account", cascadeErr.Entity)
	assert.EqualValues(t, 1, cascadeErr.ID)
	assert.Equal(t, 4, cascadeErr.Step)
	assert.ErrorIs(t, err, errInjected)

	// 故障前已执行的步骤全部回滚，数据原封不动
	assert.EqualValues(t, 1, f.count(t, &domain.Account{}, "id = ?", 1))
	assert.EqualValues(t, 2, f.count(t, &domain.Application{}, "account_id = ?", 1))
	assert.EqualValues(t, 1, f.count(t, &domain.Scrap{}, "account_id = ?", 1))
	assert.EqualValues(t, 1, f.count(t, &domain.Comment{}, "account_id = ?", 1))
	assert.EqualValues(t, 1, f.count(t, &domain.Resume{}, "account_id = ?", 1))

	// 失败时不发布任何删除事件
	assert.False(t, publisher.published("admin.account.deleted"))
}

func TestDeleteReviewRemovesComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.DeleteReview(ctx, adminActor, 1))
	assert.EqualValues(t, 0, f.count(t, &domain.Review{}, "id = ?", 1))
	assert.EqualValues(t, 0, f.count(t, &domain.Comment{}, "review_id = ?", 1))
	assert.EqualValues(t, 1, f.count(t, &domain.Comment{}, "review_id = ?", 2))
}

func TestGetDashboardStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stats, err := f.svc.GetDashboardStats(ctx, adminActor)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.AccountCount)
	assert.EqualValues(t, 2, stats.CompanyCount)
	assert.EqualValues(t, 3, stats.JobPostingCount)
	assert.EqualValues(t, 3, stats.ApplicationCount)
	assert.EqualValues(t, 2, stats.ReviewCount)
	assert.EqualValues(t, 1, stats.PendingCompanyCount)

	// 第二次命中缓存，新写入的数据在 TTL 内不可见
	require.NoError(t, f.db.Create(&domain.Notice{Title: "점검 안내"}).Error)
	require.NoError(t, f.db.Create(&domain.Account{Name: "신규", Email: "new@example.com"}).Error)

	cached, err := f.svc.GetDashboardStats(ctx, adminActor)
	require.NoError(t, err)
	assert.EqualValues(t, 2, cached.AccountCount)
}

func TestUpdateAccountValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	name := "정다은입니다"
	require.NoError(t, f.svc.UpdateAccount(ctx, adminActor, 1, application.UpdateAccountCommand{Name: &name}))
	account, err := f.svc.GetAccount(ctx, adminActor, 1)
	require.NoError(t, err)
	assert.Equal(t, name, account.Name)
	assert.Equal(t, "daeun@example.com", account.Email, "未提供的字段保持原值")

	badEmail := "not-an-email"
	err = f.svc.UpdateAccount(ctx, adminActor, 1, application.UpdateAccountCommand{Email: &badEmail})
	assert.ErrorIs(t, err, domain.ErrValidation)

	empty := "   "
	err = f.svc.UpdateAccount(ctx, adminActor, 1, application.UpdateAccountCommand{Name: &empty})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNoticeLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	notice, err := f.svc.CreateNotice(ctx, adminActor, application.NoticeCommand{Title: "서버 점검 안내", Content: "일요일 새벽 2시"})
	require.NoError(t, err)
	require.NotZero(t, notice.ID)

	_, err = f.svc.CreateNotice(ctx, adminActor, application.NoticeCommand{Title: "  "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	require.NoError(t, f.svc.UpdateNotice(ctx, adminActor, notice.ID, application.NoticeCommand{Title: "점검 일정 변경", Content: "월요일로 연기"}))
	got, err := f.svc.GetNotice(ctx, adminActor, notice.ID)
	require.NoError(t, err)
	assert.Equal(t, "점검 일정 변경", got.Title)

	require.NoError(t, f.svc.DeleteNotice(ctx, adminActor, notice.ID))
	_, err = f.svc.GetNotice(ctx, adminActor, notice.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
