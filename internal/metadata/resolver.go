package metadata

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"go.uber.org/zap"

	"github.com/mintstream/marketplace-indexer/internal/adapter"
	"github.com/mintstream/marketplace-indexer/internal/domain"
	ethclient "github.com/mintstream/marketplace-indexer/internal/ethereum"
	"github.com/mintstream/marketplace-indexer/internal/logger"
)

const defaultIPFSGateway = "https://ipfs.io/ipfs/"

// Metadata is the resolved token metadata. Name is always set; the URIs are
// nil when resolution failed and the placeholder was used.
type Metadata struct {
	Name        string
	ImageURI    *string
	MetadataURI *string
}

// Resolver fetches token metadata from the contract's tokenURI/uri pointer.
// Resolution never fails hard: any error along the way degrades to a
// placeholder name so indexing can proceed.
//
//go:generate mockgen -source=resolver.go -destination=../mocks/metadata_resolver.go -package=mocks -mock_names=Resolver=MockMetadataResolver
type Resolver interface {
	Resolve(ctx context.Context, contractAddress, tokenNumber string, standard domain.TokenStandard) Metadata
}

// metadataDoc is the subset of the token metadata JSON document we keep
type metadataDoc struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

type resolver struct {
	client      ethclient.Client
	http        adapter.HTTPClient
	ipfsGateway string
}

func NewResolver(client ethclient.Client, httpClient adapter.HTTPClient, ipfsGateway string) Resolver {
	if ipfsGateway == "" {
		ipfsGateway = defaultIPFSGateway
	}
	return &resolver{client: client, http: httpClient, ipfsGateway: ipfsGateway}
}

// Resolve reads the on-chain metadata pointer and fetches the document it
// names. Every failure degrades to the "Untitled #<tokenId>" placeholder.
func (r *resolver) Resolve(ctx context.Context, contractAddress, tokenNumber string, standard domain.TokenStandard) Metadata {
	placeholder := Metadata{Name: fmt.Sprintf("Untitled #%s", tokenNumber)}

	var uri string
	var err error
	switch standard {
	case domain.StandardERC1155:
		uri, err = r.client.ERC1155URI(ctx, contractAddress, tokenNumber)
	default:
		uri, err = r.client.ERC721TokenURI(ctx, contractAddress, tokenNumber)
	}
	if err != nil || uri == "" {
		logger.WarnCtx(ctx, "Token URI unavailable, using placeholder",
			zap.String("contract", contractAddress),
			zap.String("tokenNumber", tokenNumber),
			zap.Error(err))
		return placeholder
	}

	fetchURL := r.rewriteURI(substituteTokenID(uri, tokenNumber))

	var doc metadataDoc
	if err := r.http.Get(ctx, fetchURL, &doc); err != nil {
		logger.WarnCtx(ctx, "Metadata fetch failed, using placeholder",
			zap.String("uri", fetchURL),
			zap.Error(err))
		placeholder.MetadataURI = &uri
		return placeholder
	}

	result := Metadata{
		Name:        doc.Name,
		MetadataURI: &uri,
	}
	if result.Name == "" {
		result.Name = placeholder.Name
	}
	if doc.Image != "" {
		image := doc.Image
		result.ImageURI = &image
	}
	return result
}

// rewriteURI maps ipfs:// pointers onto the configured HTTP gateway
func (r *resolver) rewriteURI(uri string) string {
	if strings.HasPrefix(uri, "ipfs://") {
		return r.ipfsGateway + strings.TrimPrefix(uri, "ipfs://")
	}
	return uri
}

// substituteTokenID implements the ERC-1155 {id} substitution: the token ID
// as 64 lowercase hex digits, no 0x prefix
func substituteTokenID(uri, tokenNumber string) string {
	if !strings.Contains(uri, "{id}") {
		return uri
	}
	id, ok := new(big.Int).SetString(tokenNumber, 10)
	if !ok {
		return uri
	}
	return strings.ReplaceAll(uri, "{id}", fmt.Sprintf("%064x", id))
}
