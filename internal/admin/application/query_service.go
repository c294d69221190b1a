package application

import (
	"context"
	"time"

	"github.com/wyfcoding/jobboard/internal/admin/domain"
	"github.com/wyfcoding/jobboard/pkg/logger"
)

// statsCacheKey 统计缓存键
const statsCacheKey = "jobboard:admin:dashboard_stats"

// statsCacheTTL 统计缓存有效期
const statsCacheTTL = 30 * time.Second

// StatsCache 统计结果的旁路缓存抽象，Redis 实现见 pkg/cache
type StatsCache interface {
	GetJSON(ctx context.Context, key string, dest any) error
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// AdminQueryService 后台只读查询服务
type AdminQueryService struct {
	repos domain.Repositories
	cache StatsCache
}

// NewAdminQueryService 创建查询服务实例，cache 允许为 nil（直接查库）
func NewAdminQueryService(repos domain.Repositories, cache StatsCache) *AdminQueryService {
	return &AdminQueryService{repos: repos, cache: cache}
}

func (s *AdminQueryService) SearchAccounts(ctx context.Context, filter domain.AccountFilter, sort domain.SortSpec, limit int) ([]*domain.Account, error) {
	return s.repos.Accounts.Search(ctx, filter, sort, limit)
}

func (s *AdminQueryService) SearchCompanies(ctx context.Context, filter domain.CompanyFilter, sort domain.SortSpec, limit int) ([]*domain.Company, error) {
	return s.repos.Companies.Search(ctx, filter, sort, limit)
}

func (s *AdminQueryService) SearchJobPostings(ctx context.Context, filter domain.JobPostingFilter, sort domain.SortSpec, limit int) ([]*domain.JobPostingRow, error) {
	return s.repos.JobPostings.Search(ctx, filter, sort, limit)
}

func (s *AdminQueryService) SearchApplications(ctx context.Context, filter domain.ApplicationFilter, sort domain.SortSpec, limit int) ([]*domain.ApplicationRow, error) {
	return s.repos.Applications.Search(ctx, filter, sort, limit)
}

func (s *AdminQueryService) SearchResumes(ctx context.Context, filter domain.ResumeFilter, sort domain.SortSpec, limit int) ([]*domain.ResumeRow, error) {
	return s.repos.Resumes.Search(ctx, filter, sort, limit)
}

func (s *AdminQueryService) SearchReviews(ctx context.Context, filter domain.ReviewFilter, sort domain.SortSpec, limit int) ([]*domain.ReviewRow, error) {
	return s.repos.Reviews.Search(ctx, filter, sort, limit)
}

func (s *AdminQueryService) SearchComments(ctx context.Context, filter domain.CommentFilter, sort domain.SortSpec, limit int) ([]*domain.CommentRow, error) {
	return s.repos.Comments.Search(ctx, filter, sort, limit)
}

func (s *AdminQueryService) GetAccount(ctx context.Context, id uint) (*domain.Account, error) {
	return s.repos.Accounts.Get(ctx, id)
}

func (s *AdminQueryService) GetCompany(ctx context.Context, id uint) (*domain.Company, error) {
	return s.repos.Companies.Get(ctx, id)
}

func (s *AdminQueryService) ListPendingCompanies(ctx context.Context) ([]*domain.Company, error) {
	return s.repos.Companies.ListPending(ctx)
}

func (s *AdminQueryService) GetJobPosting(ctx context.Context, id uint) (*domain.JobPosting, error) {
	return s.repos.JobPostings.Get(ctx, id)
}

func (s *AdminQueryService) GetResume(ctx context.Context, id uint) (*domain.Resume, error) {
	return s.repos.Resumes.Get(ctx, id)
}

// GetReview 返回评价及其全部留言
func (s *AdminQueryService) GetReview(ctx context.Context, id uint) (*ReviewDetail, error) {
	review, err := s.repos.Reviews.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.repos.Comments.ListByReview(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ReviewDetail{Review: review, Comments: comments}, nil
}

func (s *AdminQueryService) ListNotices(ctx context.Context) ([]*domain.Notice, error) {
	return s.repos.Notices.List(ctx)
}

func (s *AdminQueryService) GetNotice(ctx context.Context, id uint) (*domain.Notice, error) {
	return s.repos.Notices.Get(ctx, id)
}

// GetDashboardStats 六项独立计数，短 TTL 旁路缓存，缓存故障时直接回源
func (s *AdminQueryService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	if s.cache != nil {
		var cached DashboardStats
		if err := s.cache.GetJSON(ctx, statsCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	stats := &DashboardStats{}
	var err error
	if stats.AccountCount, err = s.repos.Accounts.Count(ctx); err != nil {
		return nil, err
	}
	if stats.CompanyCount, err = s.repos.Companies.Count(ctx); err != nil {
		return nil, err
	}
	if stats.JobPostingCount, err = s.repos.JobPostings.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ApplicationCount, err = s.repos.Applications.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ReviewCount, err = s.repos.Reviews.Count(ctx); err != nil {
		return nil, err
	}
	if stats.PendingCompanyCount, err = s.repos.Companies.CountByStatus(ctx, domain.ApprovalPending); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, statsCacheKey, stats, statsCacheTTL); err != nil {
			logger.Warn(ctx, "failed to cache dashboard stats", "error", err)
		}
	}
	return stats, nil
}
