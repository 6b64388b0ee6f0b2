package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Uchiha-Network/Story-Guard/internal/domain"
)

type RegisterAssetRequest struct {
	ImageName   string
	CreatorName string
	LicenseType string
	Description string
	Tags        []string

	// Either the raw bytes to fingerprint, or a precomputed perceptual
	// hash with its metadata.
	ContentBytes []byte
	ImageHash    string
	FileSize     int64
	Dimensions   domain.Dimensions
}

type RegisterAssetResponse struct {
	Asset   domain.RegisteredAsset
	Receipt *RegistrarReceipt
}

type RegisterAsset struct {
	Assets    AssetRepository
	Prints    Fingerprinter
	Registrar AssetRegistrar
	Now       func() time.Time
}

func (uc *RegisterAsset) Execute(ctx context.Context, req RegisterAssetRequest) (*RegisterAssetResponse, error) {
	if req.ImageName == "" {
		return nil, fmt.Errorf("%w: imageName is required", domain.ErrValidation)
	}
	if req.CreatorName == "" {
		return nil, fmt.Errorf("%w: creatorName is required", domain.ErrValidation)
	}
	if req.LicenseType == "" {
		return nil, fmt.Errorf("%w: licenseType is required", domain.ErrValidation)
	}
	if len(req.ContentBytes) == 0 && req.ImageHash == "" {
		return nil, fmt.Errorf("%w: contentBytes or imageHash is required", domain.ErrValidation)
	}

	now := time.Now
	if uc.Now != nil {
		now = uc.Now
	}

	asset := domain.RegisteredAsset{
		ID:          uuid.NewString(),
		ImageURL:    "/uploads/" + req.ImageName,
		ImageName:   req.ImageName,
		ImageHash:   req.ImageHash,
		CreatorName: req.CreatorName,
		LicenseType: req.LicenseType,
		Description: req.Description,
		Tags:        req.Tags,
		UploadedAt:  now().UTC(),
		FileSize:    req.FileSize,
		Dimensions:  req.Dimensions,
	}
	if asset.Tags == nil {
		asset.Tags = []string{}
	}

	if len(req.ContentBytes) > 0 {
		fp, err := uc.Prints.Generate(req.ContentBytes)
		if err != nil {
			return nil, err
		}
		asset.ImageHash = fp.PerceptualHash
		asset.ContentHash = fp.ContentHash
		asset.FileSize = fp.FileSize
		asset.Dimensions = domain.Dimensions{Width: fp.Width, Height: fp.Height}
	}

	if err := uc.Assets.PutAsset(asset); err != nil {
		return nil, err
	}

	resp := &RegisterAssetResponse{Asset: asset}
	if uc.Registrar != nil {
		receipt, err := uc.Registrar.Register(ctx, asset)
		if err != nil {
			// The local record is the source of truth; the external
			// mirror is best effort.
			log.Printf("asset registrar failed for %s: %v", asset.ID, err)
		} else {
			resp.Receipt = &receipt
		}
	}
	return resp, nil
}
