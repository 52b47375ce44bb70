package metadata_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/mintstream/marketplace-indexer/internal/domain"
	"github.com/mintstream/marketplace-indexer/internal/logger"
	"github.com/mintstream/marketplace-indexer/internal/metadata"
	"github.com/mintstream/marketplace-indexer/internal/mocks"
)

const testContract = "0x7c40c393DC352f3F749507a570b68E684f9D6735"

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

type testMocks struct {
	client   *mocks.MockClient
	http     *mocks.MockHTTPClient
	resolver metadata.Resolver
}

func setupTest(t *testing.T) *testMocks {
	ctrl := gomock.NewController(t)
	m := &testMocks{
		client: mocks.NewMockClient(ctrl),
		http:   mocks.NewMockHTTPClient(ctrl),
	}
	m.resolver = metadata.NewResolver(m.client, m.http, "")
	return m
}

func respondWith(body string) func(context.Context, string, interface{}) error {
	return func(_ context.Context, _ string, result interface{}) error {
		return json.Unmarshal([]byte(body), result)
	}
}

func TestResolveERC721(t *testing.T) {
	m := setupTest(t)
	ctx := context.Background()

	m.client.EXPECT().
		ERC721TokenURI(ctx, testContract, "7").
		Return("https://example.com/meta/7.json", nil)
	m.http.EXPECT().
		Get(ctx, "https://example.com/meta/7.json", gomock.Any()).
		DoAndReturn(respondWith(`{"name":"Glass Study #7","image":"https://example.com/img/7.png"}`))

	got := m.resolver.Resolve(ctx, testContract, "7", domain.StandardERC721)
	assert.Equal(t, "Glass Study #7", got.Name)
	if assert.NotNil(t, got.ImageURI) {
		assert.Equal(t, "https://example.com/img/7.png", *got.ImageURI)
	}
	if assert.NotNil(t, got.MetadataURI) {
		assert.Equal(t, "https://example.com/meta/7.json", *got.MetadataURI)
	}
}

func TestResolveRewritesIPFSPointer(t *testing.T) {
	m := setupTest(t)
	ctx := context.Background()

	m.client.EXPECT().
		ERC721TokenURI(ctx, testContract, "1").
		Return("ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG/1.json", nil)
	m.http.EXPECT().
		Get(ctx, "https://ipfs.io/ipfs/QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG/1.json", gomock.Any()).
		DoAndReturn(respondWith(`{"name":"One"}`))

	got := m.resolver.Resolve(ctx, testContract, "1", domain.StandardERC721)
	assert.Equal(t, "One", got.Name)
	// the stored pointer stays canonical, only the fetch goes through the gateway
	if assert.NotNil(t, got.MetadataURI) {
		assert.Equal(t, "ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG/1.json", *got.MetadataURI)
	}
}

func TestResolveSubstitutesERC1155TokenID(t *testing.T) {
	m := setupTest(t)
	ctx := context.Background()

	m.client.EXPECT().
		ERC1155URI(ctx, testContract, "257").
		Return("https://example.com/api/{id}.json", nil)
	m.http.EXPECT().
		Get(ctx, "https://example.com/api/0000000000000000000000000000000000000000000000000000000000000101.json", gomock.Any()).
		DoAndReturn(respondWith(`{"name":"Edition 257"}`))

	got := m.resolver.Resolve(ctx, testContract, "257", domain.StandardERC1155)
	assert.Equal(t, "Edition 257", got.Name)
}

func TestResolvePlaceholderWhenURIUnavailable(t *testing.T) {
	m := setupTest(t)
	ctx := context.Background()

	m.client.EXPECT().
		ERC721TokenURI(ctx, testContract, "42").
		Return("", errors.New("execution reverted"))

	got := m.resolver.Resolve(ctx, testContract, "42", domain.StandardERC721)
	assert.Equal(t, "Untitled #42", got.Name)
	assert.Nil(t, got.ImageURI)
	assert.Nil(t, got.MetadataURI)
}

func TestResolvePlaceholderWhenFetchFails(t *testing.T) {
	m := setupTest(t)
	ctx := context.Background()

	m.client.EXPECT().
		ERC721TokenURI(ctx, testContract, "9").
		Return("https://example.com/meta/9.json", nil)
	m.http.EXPECT().
		Get(ctx, "https://example.com/meta/9.json", gomock.Any()).
		Return(errors.New("504 gateway timeout"))

	got := m.resolver.Resolve(ctx, testContract, "9", domain.StandardERC721)
	assert.Equal(t, "Untitled #9", got.Name)
	// the on-chain pointer is still recorded even though the fetch failed
	if assert.NotNil(t, got.MetadataURI) {
		assert.Equal(t, "https://example.com/meta/9.json", *got.MetadataURI)
	}
}

func TestResolvePlaceholderWhenDocumentHasNoName(t *testing.T) {
	m := setupTest(t)
	ctx := context.Background()

	m.client.EXPECT().
		ERC721TokenURI(ctx, testContract, "3").
		Return("https://example.com/meta/3.json", nil)
	m.http.EXPECT().
		Get(ctx, "https://example.com/meta/3.json", gomock.Any()).
		DoAndReturn(respondWith(`{"image":"https://example.com/img/3.png"}`))

	got := m.resolver.Resolve(ctx, testContract, "3", domain.StandardERC721)
	assert.Equal(t, "Untitled #3", got.Name)
	if assert.NotNil(t, got.ImageURI) {
		assert.Equal(t, "https://example.com/img/3.png", *got.ImageURI)
	}
}
