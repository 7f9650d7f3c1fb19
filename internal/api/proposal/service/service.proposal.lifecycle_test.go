// Package proposalsvc - Test nghiệp vụ vòng đời proposal trên store trong bộ nhớ.
package proposalsvc

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "proposal_hub/internal/api/base/models"
	basesvc "proposal_hub/internal/api/base/service"
	proposaldto "proposal_hub/internal/api/proposal/dto"
	models "proposal_hub/internal/api/proposal/models"
	"proposal_hub/internal/common"
	"proposal_hub/internal/contentgen"
)

// fakeProposalStore giả lập store proposal trong bộ nhớ.
// updateErr được gán để giả lập lỗi ghi ở các bước cập nhật proposal.
type fakeProposalStore struct {
	docs      map[primitive.ObjectID]models.Proposal
	updateErr error
}

func newFakeProposalStore() *fakeProposalStore {
	return &fakeProposalStore{docs: map[primitive.ObjectID]models.Proposal{}}
}

func (f *fakeProposalStore) add(p models.Proposal) models.Proposal {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	f.docs[p.ID] = p
	return p
}

func (f *fakeProposalStore) match(p models.Proposal, filter interface{}) bool {
	m, ok := filter.(bson.M)
	if !ok {
		return true
	}
	if id, ok := m["_id"]; ok && id != p.ID {
		return false
	}
	if owner, ok := m["ownerId"]; ok && owner != p.OwnerID {
		return false
	}
	if status, ok := m["status"]; ok && status != p.Status {
		return false
	}
	return true
}

func (f *fakeProposalStore) applySet(p *models.Proposal, set map[string]interface{}) {
	for key, value := range set {
		switch key {
		case "title":
			p.Title = value.(string)
		case "projectDescription":
			p.ProjectDescription = value.(string)
		case "content":
			p.Content = value.(models.Content)
		case "status":
			p.Status = value.(string)
		case "currentVersion":
			p.CurrentVersion = value.(int64)
		}
	}
}

func (f *fakeProposalStore) InsertOne(ctx context.Context, data models.Proposal) (models.Proposal, error) {
	return f.add(data), nil
}

func (f *fakeProposalStore) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (models.Proposal, error) {
	for _, p := range f.docs {
		if f.match(p, filter) {
			return p, nil
		}
	}
	return models.Proposal{}, common.ErrNotFound
}

func (f *fakeProposalStore) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]models.Proposal, error) {
	results := []models.Proposal{}
	for _, p := range f.docs {
		if f.match(p, filter) {
			results = append(results, p)
		}
	}
	return results, nil
}

func (f *fakeProposalStore) FindOneById(ctx context.Context, id primitive.ObjectID) (models.Proposal, error) {
	return f.FindOne(ctx, bson.M{"_id": id}, nil)
}

func (f *fakeProposalStore) FindWithPagination(ctx context.Context, filter interface{}, page, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[models.Proposal], error) {
	items, err := f.Find(ctx, filter, nil)
	if err != nil {
		return nil, err
	}
	return basemodels.NewPaginateResult(page, limit, items, int64(len(items))), nil
}

func (f *fakeProposalStore) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts *options.UpdateOptions) (models.Proposal, error) {
	if f.updateErr != nil {
		return models.Proposal{}, f.updateErr
	}
	updateData, err := basesvc.ToUpdateData(update)
	if err != nil {
		return models.Proposal{}, err
	}
	for id, p := range f.docs {
		if f.match(p, filter) {
			f.applySet(&p, updateData.Set)
			f.docs[id] = p
			return p, nil
		}
	}
	return models.Proposal{}, common.ErrNotFound
}

func (f *fakeProposalStore) UpdateById(ctx context.Context, id primitive.ObjectID, data interface{}) (models.Proposal, error) {
	return f.UpdateOne(ctx, bson.M{"_id": id}, data, nil)
}

func (f *fakeProposalStore) DeleteOne(ctx context.Context, filter interface{}) error {
	for id, p := range f.docs {
		if f.match(p, filter) {
			delete(f.docs, id)
			return nil
		}
	}
	return common.ErrNotFound
}

func (f *fakeProposalStore) DeleteMany(ctx context.Context, filter interface{}) (int64, error) {
	var deleted int64
	for id, p := range f.docs {
		if f.match(p, filter) {
			delete(f.docs, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeProposalStore) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	return f.DeleteOne(ctx, bson.M{"_id": id})
}

func (f *fakeProposalStore) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	var count int64
	for _, p := range f.docs {
		if f.match(p, filter) {
			count++
		}
	}
	return count, nil
}

func (f *fakeProposalStore) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	count, err := f.CountDocuments(ctx, filter)
	return count > 0, err
}

// fakeReviewStore giả lập store review trong bộ nhớ.
// commitErr giả lập lỗi riêng bước đánh dấu state, updateErr giả lập lỗi ghi chung.
type fakeReviewStore struct {
	docs      map[primitive.ObjectID]models.Review
	seq       int64
	commitErr error
	updateErr error
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{docs: map[primitive.ObjectID]models.Review{}}
}

func (f *fakeReviewStore) match(r models.Review, filter interface{}) bool {
	m, ok := filter.(bson.M)
	if !ok {
		return true
	}
	if id, ok := m["_id"]; ok && id != r.ID {
		return false
	}
	if proposalID, ok := m["proposalId"]; ok && proposalID != r.ProposalID {
		return false
	}
	if state, ok := m["state"]; ok && state != r.State {
		return false
	}
	return true
}

func (f *fakeReviewStore) InsertOne(ctx context.Context, data models.Review) (models.Review, error) {
	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
	}
	f.seq++
	data.CreatedAt = f.seq
	f.docs[data.ID] = data
	return data, nil
}

// FindOne trả về bản ghi khớp mới nhất theo createdAt, đúng với sort
// createdAt giảm dần mà FindLatestByProposal dùng
func (f *fakeReviewStore) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (models.Review, error) {
	var latest models.Review
	found := false
	for _, r := range f.docs {
		if f.match(r, filter) && (!found || r.CreatedAt > latest.CreatedAt) {
			latest = r
			found = true
		}
	}
	if !found {
		return models.Review{}, common.ErrNotFound
	}
	return latest, nil
}

func (f *fakeReviewStore) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]models.Review, error) {
	results := []models.Review{}
	for _, r := range f.docs {
		if f.match(r, filter) {
			results = append(results, r)
		}
	}
	return results, nil
}

func (f *fakeReviewStore) FindOneById(ctx context.Context, id primitive.ObjectID) (models.Review, error) {
	return f.FindOne(ctx, bson.M{"_id": id}, nil)
}

func (f *fakeReviewStore) FindWithPagination(ctx context.Context, filter interface{}, page, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[models.Review], error) {
	items, err := f.Find(ctx, filter, nil)
	if err != nil {
		return nil, err
	}
	return basemodels.NewPaginateResult(page, limit, items, int64(len(items))), nil
}

func (f *fakeReviewStore) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts *options.UpdateOptions) (models.Review, error) {
	updateData, err := basesvc.ToUpdateData(update)
	if err != nil {
		return models.Review{}, err
	}
	if f.updateErr != nil {
		return models.Review{}, f.updateErr
	}
	if f.commitErr != nil {
		if _, ok := updateData.Set["state"]; ok {
			return models.Review{}, f.commitErr
		}
	}
	for id, r := range f.docs {
		if f.match(r, filter) {
			for key, value := range updateData.Set {
				switch key {
				case "state":
					r.State = value.(string)
				case "bdResponse":
					r.BDResponse = value.(string)
				}
			}
			if _, ok := updateData.Unset["bdResponse"]; ok {
				r.BDResponse = ""
			}
			f.docs[id] = r
			return r, nil
		}
	}
	return models.Review{}, common.ErrNotFound
}

func (f *fakeReviewStore) UpdateById(ctx context.Context, id primitive.ObjectID, data interface{}) (models.Review, error) {
	return f.UpdateOne(ctx, bson.M{"_id": id}, data, nil)
}

func (f *fakeReviewStore) DeleteOne(ctx context.Context, filter interface{}) error {
	for id, r := range f.docs {
		if f.match(r, filter) {
			delete(f.docs, id)
			return nil
		}
	}
	return common.ErrNotFound
}

func (f *fakeReviewStore) DeleteMany(ctx context.Context, filter interface{}) (int64, error) {
	var deleted int64
	for id, r := range f.docs {
		if f.match(r, filter) {
			delete(f.docs, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeReviewStore) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	return f.DeleteOne(ctx, bson.M{"_id": id})
}

func (f *fakeReviewStore) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	var count int64
	for _, r := range f.docs {
		if f.match(r, filter) {
			count++
		}
	}
	return count, nil
}

func (f *fakeReviewStore) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	count, err := f.CountDocuments(ctx, filter)
	return count > 0, err
}

// fakeProvider giả lập provider sinh nội dung
type fakeProvider struct {
	generateErr   error
	regenerateErr error
	content       models.Content
}

func (p *fakeProvider) Generate(ctx context.Context, projectDescription string) (models.Content, error) {
	if p.generateErr != nil {
		return models.Content{}, p.generateErr
	}
	return p.content, nil
}

func (p *fakeProvider) Regenerate(ctx context.Context, current models.Content, adminFeedback string, bdFeedback string) (models.Content, error) {
	if p.regenerateErr != nil {
		return models.Content{}, p.regenerateErr
	}
	return p.content, nil
}

func newTestService(proposals *fakeProposalStore, reviews *fakeReviewStore, provider contentgen.Provider) *ProposalService {
	return &ProposalService{
		BaseServiceMongo: proposals,
		reviewService:    &ReviewService{BaseServiceMongo: reviews},
		provider:         provider,
	}
}

func contentJSON(t *testing.T, c models.Content) string {
	t.Helper()
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal nội dung trả về lỗi: %v", err)
	}
	return string(data)
}

func TestCreate_ProviderLoiVanDungFallback(t *testing.T) {
	proposals := newFakeProposalStore()
	svc := newTestService(proposals, newFakeReviewStore(), &fakeProvider{generateErr: errors.New("timeout")})

	created, err := svc.Create(context.Background(), primitive.NewObjectID(), &proposaldto.ProposalCreateInput{
		Title:              "Website bán hàng",
		ProjectDescription: "Xây dựng website bán hàng",
	})
	if err != nil {
		t.Fatalf("Create phải thành công dù provider lỗi, có lỗi: %v", err)
	}
	if created.Status != models.StatusDraft || created.CurrentVersion != 1 {
		t.Errorf("proposal mới phải là draft v1, có (%s, %d)", created.Status, created.CurrentVersion)
	}

	want := contentJSON(t, contentgen.FallbackTemplate("Xây dựng website bán hàng"))
	if got := contentJSON(t, created.Content); got != want {
		t.Error("provider lỗi thì nội dung phải là template fallback")
	}
}

func TestGetForOwner_CheProposalNguoiKhac(t *testing.T) {
	proposals := newFakeProposalStore()
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()
	created := proposals.add(models.Proposal{
		Title:   "Của owner",
		Status:  models.StatusDraft,
		OwnerID: owner,
	})
	svc := newTestService(proposals, newFakeReviewStore(), nil)

	if _, err := svc.GetForOwner(context.Background(), created.ID, owner); err != nil {
		t.Fatalf("chủ sở hữu phải đọc được proposal của mình, lỗi: %v", err)
	}

	_, err := svc.GetForOwner(context.Background(), created.ID, other)
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("proposal của người khác phải trả về ErrNotFound, có: %v", err)
	}

	_, err = svc.Edit(context.Background(), created.ID, other, &proposaldto.ProposalEditInput{})
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("chỉnh sửa proposal của người khác phải trả về ErrNotFound, có: %v", err)
	}
}

func TestRevise_TangVersionVaGhiBDResponse(t *testing.T) {
	proposals := newFakeProposalStore()
	reviews := newFakeReviewStore()
	owner := primitive.NewObjectID()
	proposal := proposals.add(models.Proposal{
		Title:          "Cần chỉnh sửa",
		Status:         models.StatusRevisionRequested,
		CurrentVersion: 2,
		OwnerID:        owner,
		Content: models.NewMap(map[string]models.Content{
			"introduction": models.NewString("Bản cũ"),
		}),
	})
	review, _ := reviews.InsertOne(context.Background(), models.Review{
		ProposalID:      proposal.ID,
		Decision:        models.DecisionRevisionRequested,
		Comments:        "Thiếu chi tiết",
		Recommendations: "Bổ sung timeline",
		State:           models.ReviewStateCommitted,
	})

	// Provider sinh lại lỗi: fallback vẫn phải cho revise thành công
	svc := newTestService(proposals, reviews, &fakeProvider{regenerateErr: errors.New("timeout")})
	updated, err := svc.Revise(context.Background(), proposal.ID, owner, &proposaldto.ReviseInput{
		BDResponse: "Đã bổ sung timeline",
	})
	if err != nil {
		t.Fatalf("Revise trả về lỗi: %v", err)
	}

	if updated.Status != models.StatusDraft {
		t.Errorf("sau revise proposal phải về draft, có %s", updated.Status)
	}
	if updated.CurrentVersion != 3 {
		t.Errorf("sau revise version phải là 3, có %d", updated.CurrentVersion)
	}
	if notes, ok := updated.Content.Field("revision_notes"); !ok {
		t.Error("nội dung fallback sau revise phải có revision_notes")
	} else if text, _ := notes.StringValue(); !strings.Contains(text, "Bổ sung timeline") || !strings.Contains(text, "Đã bổ sung timeline") {
		t.Error("revision_notes phải chứa cả phản hồi của admin và BD")
	}

	stored := reviews.docs[review.ID]
	if stored.BDResponse != "Đã bổ sung timeline" {
		t.Errorf("bdResponse trên review mới nhất = %q, muốn %q", stored.BDResponse, "Đã bổ sung timeline")
	}
}

func TestRevise_KhongCoReview(t *testing.T) {
	proposals := newFakeProposalStore()
	owner := primitive.NewObjectID()
	proposal := proposals.add(models.Proposal{
		Status:  models.StatusRevisionRequested,
		OwnerID: owner,
		Content: models.NewMap(map[string]models.Content{"introduction": models.NewString("x")}),
	})
	svc := newTestService(proposals, newFakeReviewStore(), nil)

	_, err := svc.Revise(context.Background(), proposal.ID, owner, &proposaldto.ReviseInput{BDResponse: "phản hồi"})
	if !errors.Is(err, common.ErrNoReviewFound) {
		t.Errorf("revise không có review phải trả về ErrNoReviewFound, có: %v", err)
	}
}

func TestRevise_TraLaiBDResponseKhiCapNhatProposalLoi(t *testing.T) {
	proposals := newFakeProposalStore()
	reviews := newFakeReviewStore()
	owner := primitive.NewObjectID()
	proposal := proposals.add(models.Proposal{
		Status:         models.StatusRevisionRequested,
		CurrentVersion: 1,
		OwnerID:        owner,
		Content:        models.NewMap(map[string]models.Content{"introduction": models.NewString("x")}),
	})
	review, _ := reviews.InsertOne(context.Background(), models.Review{
		ProposalID: proposal.ID,
		Decision:   models.DecisionRevisionRequested,
		Comments:   "Thiếu chi tiết",
		State:      models.ReviewStateCommitted,
	})

	svc := newTestService(proposals, reviews, nil)
	proposals.updateErr = errors.New("mất kết nối")

	_, err := svc.Revise(context.Background(), proposal.ID, owner, &proposaldto.ReviseInput{BDResponse: "phản hồi mới"})
	if err == nil {
		t.Fatal("Revise phải trả lỗi khi cập nhật proposal thất bại")
	}
	if stored := reviews.docs[review.ID]; stored.BDResponse != "" {
		t.Errorf("bdResponse phải được trả về giá trị cũ sau khi bù, có %q", stored.BDResponse)
	}
}

func TestReview_XoaBuKhiCapNhatProposalLoi(t *testing.T) {
	proposals := newFakeProposalStore()
	reviews := newFakeReviewStore()
	proposal := proposals.add(models.Proposal{
		Status:  models.StatusSubmitted,
		OwnerID: primitive.NewObjectID(),
	})

	svc := newTestService(proposals, reviews, nil)
	proposals.updateErr = errors.New("mất kết nối")

	_, err := svc.Review(context.Background(), proposal.ID, primitive.NewObjectID(), &proposaldto.ReviewInput{
		Decision: models.DecisionApproved,
		Comments: "Tốt",
	})
	if err == nil {
		t.Fatal("Review phải trả lỗi khi cập nhật proposal thất bại")
	}
	if len(reviews.docs) != 0 {
		t.Errorf("review pending phải bị xóa bù, còn lại %d bản ghi", len(reviews.docs))
	}
	if proposals.docs[proposal.ID].Status != models.StatusSubmitted {
		t.Error("trạng thái proposal không được thay đổi khi review thất bại")
	}
}

func TestReview_CommitLoiKhongKetRevise(t *testing.T) {
	proposals := newFakeProposalStore()
	reviews := newFakeReviewStore()
	owner := primitive.NewObjectID()
	proposal := proposals.add(models.Proposal{
		Status:         models.StatusSubmitted,
		CurrentVersion: 1,
		OwnerID:        owner,
		Content:        models.NewMap(map[string]models.Content{"introduction": models.NewString("x")}),
	})

	svc := newTestService(proposals, reviews, nil)
	reviews.commitErr = errors.New("mất kết nối")

	// Bước đánh dấu committed thất bại: thao tác vẫn thành công, review còn pending
	created, err := svc.Review(context.Background(), proposal.ID, primitive.NewObjectID(), &proposaldto.ReviewInput{
		Decision:        models.DecisionRevisionRequested,
		Comments:        "Thiếu chi tiết",
		Recommendations: "Bổ sung timeline",
	})
	if err != nil {
		t.Fatalf("Review phải thành công dù bước đánh dấu committed lỗi, có: %v", err)
	}
	if created.State != models.ReviewStatePending {
		t.Fatalf("review trả về phải còn pending, có %s", created.State)
	}
	if proposals.docs[proposal.ID].Status != models.StatusRevisionRequested {
		t.Fatal("proposal phải đã chuyển sang revision_requested")
	}

	// Hết sự cố: revise phải đối soát được review pending mồ côi và thành công
	reviews.commitErr = nil
	updated, err := svc.Revise(context.Background(), proposal.ID, owner, &proposaldto.ReviseInput{
		BDResponse: "Đã bổ sung",
	})
	if err != nil {
		t.Fatalf("Revise sau review pending mồ côi phải thành công, có lỗi: %v", err)
	}
	if updated.Status != models.StatusDraft || updated.CurrentVersion != 2 {
		t.Errorf("sau revise proposal phải là draft v2, có (%s, %d)", updated.Status, updated.CurrentVersion)
	}

	stored := reviews.docs[created.ID]
	if stored.State != models.ReviewStateCommitted {
		t.Errorf("review pending phải được đối soát thành committed khi đọc, có %s", stored.State)
	}
	if stored.BDResponse != "Đã bổ sung" {
		t.Errorf("bdResponse = %q, muốn %q", stored.BDResponse, "Đã bổ sung")
	}
}

func TestDelete_ChiDraftVaXoaCascadeReview(t *testing.T) {
	proposals := newFakeProposalStore()
	reviews := newFakeReviewStore()
	owner := primitive.NewObjectID()
	draft := proposals.add(models.Proposal{Status: models.StatusDraft, OwnerID: owner})
	submitted := proposals.add(models.Proposal{Status: models.StatusSubmitted, OwnerID: owner})
	other := proposals.add(models.Proposal{Status: models.StatusDraft, OwnerID: owner})

	reviews.InsertOne(context.Background(), models.Review{ProposalID: draft.ID, State: models.ReviewStateCommitted})
	reviews.InsertOne(context.Background(), models.Review{ProposalID: draft.ID, State: models.ReviewStatePending})
	keep, _ := reviews.InsertOne(context.Background(), models.Review{ProposalID: other.ID, State: models.ReviewStateCommitted})

	svc := newTestService(proposals, reviews, nil)

	if err := svc.Delete(context.Background(), submitted.ID, owner); err == nil {
		t.Error("xóa proposal không phải draft phải bị từ chối")
	}

	if err := svc.Delete(context.Background(), draft.ID, owner); err != nil {
		t.Fatalf("xóa draft trả về lỗi: %v", err)
	}
	if _, ok := proposals.docs[draft.ID]; ok {
		t.Error("proposal draft phải bị xóa")
	}
	for _, r := range reviews.docs {
		if r.ProposalID == draft.ID {
			t.Error("review của proposal đã xóa phải bị xóa cascade")
		}
	}
	if _, ok := reviews.docs[keep.ID]; !ok {
		t.Error("review của proposal khác không được xóa theo")
	}
}
