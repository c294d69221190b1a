package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wyfcoding/jobboard/internal/admin/domain"
	"github.com/wyfcoding/jobboard/pkg/logger"
)

// Kafka 审计事件主题
const (
	topicCompanyStatus    = "admin.company.status_changed"
	topicJobPostingStatus = "admin.job_posting.publish_changed"
)

// AdminCommandService 后台写操作服务
// 状态迁移与单行删除在这里，跨仓储级联删除见 CascadeService
type AdminCommandService struct {
	repos     domain.Repositories
	uow       domain.UnitOfWork
	publisher domain.EventPublisher
}

// NewAdminCommandService 创建写操作服务实例
func NewAdminCommandService(repos domain.Repositories, uow domain.UnitOfWork, publisher domain.EventPublisher) *AdminCommandService {
	return &AdminCommandService{repos: repos, uow: uow, publisher: publisher}
}

// SetCompanyApprovalStatus 变更企业审核状态
// 状态字符串先解析再落库，解析失败时不产生任何写入
func (s *AdminCommandService) SetCompanyApprovalStatus(ctx context.Context, actor domain.Identity, companyID uint, rawStatus string) error {
	status, err := domain.ParseApprovalStatus(strings.TrimSpace(rawStatus))
	if err != nil {
		return err
	}

	company, err := s.repos.Companies.Get(ctx, companyID)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := s.repos.Companies.UpdateStatus(ctx, companyID, status, now); err != nil {
		return err
	}

	s.publish(ctx, topicCompanyStatus, fmt.Sprintf("company-%d", companyID), domain.CompanyStatusChangedEvent{
		CompanyID: companyID,
		From:      company.ApprovalStatus,
		To:        status,
		AdminID:   actor.AccountID,
		Timestamp: now,
	})
	return nil
}

// SetJobPostingPublished 职位上下架，目标值显式给定
func (s *AdminCommandService) SetJobPostingPublished(ctx context.Context, actor domain.Identity, jobPostingID uint, published bool) error {
	now := time.Now()
	if err := s.repos.JobPostings.SetPublished(ctx, jobPostingID, published, now); err != nil {
		return err
	}

	s.publish(ctx, topicJobPostingStatus, fmt.Sprintf("job-posting-%d", jobPostingID), domain.JobPostingPublishChangedEvent{
		JobPostingID: jobPostingID,
		Published:    published,
		AdminID:      actor.AccountID,
		Timestamp:    now,
	})
	return nil
}

// SoftDelistCompanyJobPostings 下架企业名下全部职位，不删除任何历史数据
// 用于撤销企业访问权但保留其公开记录的流程
func (s *AdminCommandService) SoftDelistCompanyJobPostings(ctx context.Context, companyID uint) error {
	if _, err := s.repos.Companies.Get(ctx, companyID); err != nil {
		return err
	}
	return s.repos.JobPostings.UnpublishByCompany(ctx, companyID, time.Now())
}

// UpdateAccount 管理员修改账号信息，nil 字段保持原值
func (s *AdminCommandService) UpdateAccount(ctx context.Context, id uint, cmd UpdateAccountCommand) error {
	account, err := s.repos.Accounts.Get(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Name != nil {
		if strings.TrimSpace(*cmd.Name) == "" {
			return fmt.Errorf("%w: account name must not be empty", domain.ErrValidation)
		}
		account.Name = *cmd.Name
	}
	if cmd.Email != nil {
		if !strings.Contains(*cmd.Email, "@") {
			return fmt.Errorf("%w: malformed email %q", domain.ErrValidation, *cmd.Email)
		}
		account.Email = *cmd.Email
	}
	if cmd.Phone != nil {
		account.Phone = *cmd.Phone
	}
	return s.repos.Accounts.Update(ctx, account)
}

// UpdateReview 管理员修改评价内容
func (s *AdminCommandService) UpdateReview(ctx context.Context, id uint, cmd UpdateReviewCommand) error {
	review, err := s.repos.Reviews.Get(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Title != nil {
		if strings.TrimSpace(*cmd.Title) == "" {
			return fmt.Errorf("%w: review title must not be empty", domain.ErrValidation)
		}
		review.Title = *cmd.Title
	}
	if cmd.Content != nil {
		review.Content = *cmd.Content
	}
	return s.repos.Reviews.Update(ctx, review)
}

// DeleteJobPosting 删除单个职位（叶子删除，不走级联协调器）
func (s *AdminCommandService) DeleteJobPosting(ctx context.Context, id uint) error {
	if _, err := s.repos.JobPostings.Get(ctx, id); err != nil {
		return err
	}
	return s.repos.JobPostings.Delete(ctx, id)
}

// DeleteReview 删除评价及其全部留言，同一事务内先删留言
func (s *AdminCommandService) DeleteReview(ctx context.Context, id uint) error {
	if _, err := s.repos.Reviews.Get(ctx, id); err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(repos domain.Repositories) error {
		if err := repos.Comments.DeleteByReview(ctx, id); err != nil {
			return &domain.CascadeError{Entity: "review", ID: id, Step: 1, Err: err}
		}
		if err := repos.Reviews.Delete(ctx, id); err != nil {
			return &domain.CascadeError{Entity: "review", ID: id, Step: 2, Err: err}
		}
		return nil
	})
}

// DeleteComment 删除单条留言
func (s *AdminCommandService) DeleteComment(ctx context.Context, id uint) error {
	return s.repos.Comments.Delete(ctx, id)
}

// DeleteResume 删除某账号的简历
func (s *AdminCommandService) DeleteResume(ctx context.Context, accountID uint) error {
	return s.repos.Resumes.DeleteByAccount(ctx, accountID)
}

// CreateNotice 发布公告
func (s *AdminCommandService) CreateNotice(ctx context.Context, cmd NoticeCommand) (*domain.Notice, error) {
	if strings.TrimSpace(cmd.Title) == "" {
		return nil, fmt.Errorf("%w: notice title must not be empty", domain.ErrValidation)
	}
	notice := &domain.Notice{Title: cmd.Title, Content: cmd.Content}
	if err := s.repos.Notices.Save(ctx, notice); err != nil {
		return nil, err
	}
	return notice, nil
}

// UpdateNotice 修改公告
func (s *AdminCommandService) UpdateNotice(ctx context.Context, id uint, cmd NoticeCommand) error {
	notice, err := s.repos.Notices.Get(ctx, id)
	if err != nil {
		return err
	}
	if strings.TrimSpace(cmd.Title) == "" {
		return fmt.Errorf("%w: notice title must not be empty", domain.ErrValidation)
	}
	notice.Title = cmd.Title
	notice.Content = cmd.Content
	return s.repos.Notices.Save(ctx, notice)
}

// DeleteNotice 删除公告
func (s *AdminCommandService) DeleteNotice(ctx context.Context, id uint) error {
	if _, err := s.repos.Notices.Get(ctx, id); err != nil {
		return err
	}
	return s.repos.Notices.Delete(ctx, id)
}

// publish 审计事件失败只记日志，不影响主流程结果
func (s *AdminCommandService) publish(ctx context.Context, topic, key string, event any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, key, event); err != nil {
		logger.Warn(ctx, "failed to publish admin event", "topic", topic, "key", key, "error", err)
	}
}
