package es

import (
	"Quill/internal/pkg/util"
	"context"
	"errors"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
	"github.com/goccy/go-json"
)

type PostRepo interface {
	SearchPostIDs(ctx context.Context, keyword string, size int) ([]string, error)
	IndexPost(ctx context.Context, post *PostES, version int64) error
	DeletePost(ctx context.Context, id string) error
}

type PostRepoImpl struct {
	client *elasticsearch.TypedClient
	index  string
}

func NewPostRepo(client *elasticsearch.TypedClient, index string) PostRepo {
	return &PostRepoImpl{client: client, index: index}
}

// SearchPostIDs 按相关度返回帖子 ID，标题权重最高
func (s *PostRepoImpl) SearchPostIDs(ctx context.Context, keyword string, size int) ([]string, error) {
	if keyword == "" {
		return []string{}, nil
	}

	query := &types.Query{
		Bool: &types.BoolQuery{
			Should: []types.Query{
				{
					MultiMatch: &types.MultiMatchQuery{
						Query:  keyword,
						Fields: []string{"title^3", "category_names^2", "plain_content^1"},
						Boost:  util.PtrFloat32(2.0),
					},
				},
				{
					MultiMatch: &types.MultiMatchQuery{
						Query:     keyword,
						Fields:    []string{"title", "plain_content"},
						Fuzziness: util.PtrStr("AUTO"),
						Boost:     util.PtrFloat32(0.5),
					},
				},
			},
		},
	}

	req := s.client.Search().
		Index(s.index).
		Query(query).
		Source_(&types.SourceFilter{Includes: []string{"id"}}).
		Size(size)

	return s.executeSearch(ctx, req)
}

// IndexPost 使用外部版本号，乱序到达的旧事件被丢弃
func (s *PostRepoImpl) IndexPost(ctx context.Context, post *PostES, version int64) error {
	_, err := s.client.Index(s.index).
		Id(post.ID).
		Document(post).
		Version(strconv.FormatInt(version, 10)).
		VersionType(versiontype.External).
		Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == ConflictCode {
				return nil
			}
		}
		return err
	}

	return nil
}

func (s *PostRepoImpl) DeletePost(ctx context.Context, id string) error {
	_, err := s.client.Delete(s.index, id).Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == NotFoundCode {
				return nil
			}
		}
		return err
	}

	return nil
}

func (s *PostRepoImpl) executeSearch(ctx context.Context, req *search.Search) ([]string, error) {
	resp, err := req.Do(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		if hit.Source_ == nil {
			continue
		}
		var doc struct {
			ID string `json:"id"`
		}
		if err = json.Unmarshal(hit.Source_, &doc); err != nil || doc.ID == "" {
			continue
		}
		ids = append(ids, doc.ID)
	}
	return ids, nil
}
