package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	ctxPkg "github.com/darklord813/gamevault/pkg/context"
	"github.com/darklord813/gamevault/pkg/internal/model"
	"github.com/darklord813/gamevault/pkg/internal/store"
	"github.com/darklord813/gamevault/pkg/internal/types"
	nlog "github.com/darklord813/gamevault/pkg/log"
	"github.com/darklord813/gamevault/pkg/metrics"
	"github.com/darklord813/gamevault/pkg/rule"
)

// CatalogService 负责游戏目录的增删改查与计数.
type CatalogService struct {
	st  *store.Store
	now func() time.Time
}

// NewCatalogService 创建并返回一个新的 CatalogService 实例.
func NewCatalogService(c context.Context) *CatalogService {
	kvc := ctxPkg.GetKVClient(c)
	if kvc == nil {
		nlog.Logger().Warn().Msg("KV client not initialized, CatalogService features limited")
	}

	return &CatalogService{
		st:  store.New(kvc),
		now: time.Now,
	}
}

// Store 返回底层集合存储，供同进程的其他服务复用.
func (s *CatalogService) Store() *store.Store {
	return s.st
}

// validateSaveRequest 校验创建/更新请求，校验失败转为 ValidationError.
func validateSaveRequest(req *types.SaveGameRequest) error {
	if req == nil {
		return NewValidationError("", "request body is required")
	}

	if err := rule.ValidateStruct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return NewValidationError(strings.ToLower(verrs[0].Field()), "failed on rule "+verrs[0].Tag())
		}

		return NewValidationError("", err.Error())
	}

	// required 只拦截空串，纯空白的必填字段在这里拦截
	mandatory := []struct{ field, value string }{
		{"name", req.Name},
		{"genre", req.Genre},
		{"size", req.Size},
		{"mod_info", req.ModInfo},
	}
	for _, m := range mandatory {
		if strings.TrimSpace(m.value) == "" {
			return NewValidationError(m.field, "must not be blank")
		}
	}

	for _, link := range req.DownloadLinks {
		if strings.TrimSpace(link.URL) == "" {
			return NewValidationError("download_links", "link url must not be blank")
		}
	}

	return nil
}

// maxImageBytes 封面图解码后的体积上限.
const maxImageBytes = 2 << 20

// validateImage 校验 data URI 形式的封面：MIME 必须是 image/*，解码后不超过 2MB.
// 非 data URI（占位 URL）原样放行，压缩由客户端负责.
func validateImage(image string) error {
	if !strings.HasPrefix(image, "data:") {
		return nil
	}

	meta, payload, ok := strings.Cut(strings.TrimPrefix(image, "data:"), ",")
	if !ok {
		return NewValidationError("image", "malformed data uri")
	}

	mime, _, _ := strings.Cut(meta, ";")
	if !strings.HasPrefix(mime, "image/") {
		return NewValidationError("image", "must be an image/* data uri")
	}

	if base64.StdEncoding.DecodedLen(len(payload)) > maxImageBytes {
		return NewValidationError("image", "decoded image exceeds 2MB")
	}

	return nil
}

// Create 创建游戏：分配唯一 ID、填充默认值、计数器清零后追加到目录.
func (s *CatalogService) Create(ctx context.Context, req *types.SaveGameRequest) (*model.Game, error) {
	if err := validateSaveRequest(req); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Image) == "" {
		return nil, NewValidationError("image", "image is required on create")
	}

	if err := validateImage(req.Image); err != nil {
		return nil, err
	}

	games := s.st.LoadGames(ctx)

	now := s.now().UTC()

	// ID 取创建时间戳（毫秒），同毫秒冲突时递增
	id := now.UnixMilli()
	for containsID(games, id) {
		id++
	}

	game := model.Game{
		ID:            id,
		Name:          req.Name,
		Version:       req.Version,
		Genre:         req.Genre,
		Platform:      req.Platform,
		Size:          req.Size,
		Description:   req.Description,
		ModInfo:       req.ModInfo,
		Image:         req.Image,
		DownloadLinks: toLinks(req.DownloadLinks),
		CreatedAt:     now,
	}
	game.Normalize()

	games = append(games, game)
	if err := s.st.SaveGames(ctx, games); err != nil {
		return nil, err
	}

	nlog.Logger().Info().Int64("game_id", id).Str("name", game.Name).Msg("game created")

	return &game, nil
}

// Update 更新游戏：保留 ID、计数器、评分派生字段与创建时间，覆盖其余字段.
func (s *CatalogService) Update(ctx context.Context, id int64, req *types.SaveGameRequest) (*model.Game, error) {
	if err := validateSaveRequest(req); err != nil {
		return nil, err
	}

	if err := validateImage(req.Image); err != nil {
		return nil, err
	}

	games := s.st.LoadGames(ctx)

	idx := indexOfID(games, id)
	if idx < 0 {
		return nil, fmt.Errorf("game %d: %w", id, ErrNotFound)
	}

	prev := games[idx]
	now := s.now().UTC()

	next := model.Game{
		ID:            prev.ID,
		Name:          req.Name,
		Version:       req.Version,
		Genre:         req.Genre,
		Platform:      req.Platform,
		Size:          req.Size,
		Description:   req.Description,
		ModInfo:       req.ModInfo,
		Image:         req.Image,
		DownloadLinks: toLinks(req.DownloadLinks),
		Downloads:     prev.Downloads,
		Views:         prev.Views,
		Rating:        prev.Rating,
		Votes:         prev.Votes,
		Distribution:  prev.Distribution,
		CreatedAt:     prev.CreatedAt,
		UpdatedAt:     &now,
	}

	// 更新时允许不传图片，沿用旧图
	if strings.TrimSpace(next.Image) == "" {
		next.Image = prev.Image
	}

	next.Normalize()
	games[idx] = next

	if err := s.st.SaveGames(ctx, games); err != nil {
		return nil, err
	}

	return &next, nil
}

// Delete 删除游戏并级联清理其分享链接与评分聚合.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	games := s.st.LoadGames(ctx)

	idx := indexOfID(games, id)
	if idx < 0 {
		return fmt.Errorf("game %d: %w", id, ErrNotFound)
	}

	games = append(games[:idx], games[idx+1:]...)
	if err := s.st.SaveGames(ctx, games); err != nil {
		return err
	}

	// 级联删除指向该游戏的分享链接
	links := s.st.LoadShareLinks(ctx)

	purged := 0

	for code, link := range links {
		if link.GameID == id {
			delete(links, code)

			purged++
		}
	}

	if purged > 0 {
		if err := s.st.SaveShareLinks(ctx, links); err != nil {
			return err
		}
	}

	// 级联删除评分聚合，避免遗留孤儿主题
	aggs := s.st.LoadAggregates(ctx)
	if _, ok := aggs[subjectID(id)]; ok {
		delete(aggs, subjectID(id))

		if err := s.st.SaveAggregates(ctx, aggs); err != nil {
			return err
		}
	}

	nlog.Logger().Info().Int64("game_id", id).Int("purged_shares", purged).Msg("game deleted")

	return nil
}

// Get 按 ID 获取游戏.
func (s *CatalogService) Get(ctx context.Context, id int64) (*model.Game, error) {
	games := s.st.LoadGames(ctx)

	idx := indexOfID(games, id)
	if idx < 0 {
		return nil, fmt.Errorf("game %d: %w", id, ErrNotFound)
	}

	g := games[idx]

	return &g, nil
}

// List 按筛选条件枚举游戏，默认保持插入顺序.
func (s *CatalogService) List(ctx context.Context, filter *types.GameFilter) []model.Game {
	games := s.st.LoadGames(ctx)
	if filter == nil {
		return games
	}

	out := make([]model.Game, 0, len(games))

	search := strings.ToLower(filter.Search)

	for _, g := range games {
		if filter.Platform != "" && g.Platform != filter.Platform {
			continue
		}

		if filter.Genre != "" && g.Genre != filter.Genre {
			continue
		}

		if search != "" && !strings.Contains(strings.ToLower(g.Name), search) {
			continue
		}

		out = append(out, g)
	}

	if filter.Newest {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}

	return out
}

// RecordDownload 下载计数 +1，并按下载链接的平台标签累加平台维度统计.
// 标签留空时回退到游戏自身平台，保证统计维度单一.
func (s *CatalogService) RecordDownload(ctx context.Context, id int64, label string) (*model.Game, error) {
	games := s.st.LoadGames(ctx)

	idx := indexOfID(games, id)
	if idx < 0 {
		return nil, fmt.Errorf("game %d: %w", id, ErrNotFound)
	}

	games[idx].Downloads++
	if err := s.st.SaveGames(ctx, games); err != nil {
		return nil, err
	}

	if strings.TrimSpace(label) == "" {
		label = games[idx].Platform
	}

	counters := s.st.LoadPlatformDownloads(ctx)
	counters[label]++

	if err := s.st.SavePlatformDownloads(ctx, counters); err != nil {
		return nil, err
	}

	metrics.DownloadCounter.WithLabelValues(label).Inc()

	g := games[idx]

	return &g, nil
}

// RecordView 浏览计数 +1，游戏记录与独立计数集合同步累加.
func (s *CatalogService) RecordView(ctx context.Context, id int64) (*model.Game, error) {
	games := s.st.LoadGames(ctx)

	idx := indexOfID(games, id)
	if idx < 0 {
		return nil, fmt.Errorf("game %d: %w", id, ErrNotFound)
	}

	games[idx].Views++
	if err := s.st.SaveGames(ctx, games); err != nil {
		return nil, err
	}

	counters := s.st.LoadViewCounters(ctx)
	counters[id]++

	if err := s.st.SaveViewCounters(ctx, counters); err != nil {
		return nil, err
	}

	g := games[idx]

	return &g, nil
}

// ---- 内部工具 ----

func containsID(games []model.Game, id int64) bool {
	return indexOfID(games, id) >= 0
}

func indexOfID(games []model.Game, id int64) int {
	for i := range games {
		if games[i].ID == id {
			return i
		}
	}

	return -1
}

func toLinks(inputs []types.DownloadLinkInput) []model.DownloadLink {
	links := make([]model.DownloadLink, 0, len(inputs))
	for _, in := range inputs {
		links = append(links, model.DownloadLink{Label: in.Label, URL: in.URL})
	}

	return links
}
