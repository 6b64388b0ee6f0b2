package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Uchiha-Network/Story-Guard/internal/domain"
)

type fakePrints struct {
	fp  domain.Fingerprint
	err error
}

func (f fakePrints) Generate(_ []byte) (domain.Fingerprint, error) {
	return f.fp, f.err
}

type fakeRegistrar struct {
	receipt RegistrarReceipt
	err     error
	calls   int
}

func (f *fakeRegistrar) Register(_ context.Context, _ domain.RegisteredAsset) (RegistrarReceipt, error) {
	f.calls++
	return f.receipt, f.err
}

func TestRegisterAssetFromBytes(t *testing.T) {
	repo := newMemRepo()
	reg := &fakeRegistrar{receipt: RegistrarReceipt{IPAssetID: "sp_1", TxHash: "0xabc", Network: "testnet"}}
	uc := &RegisterAsset{
		Assets: repo,
		Prints: fakePrints{fp: domain.Fingerprint{
			PerceptualHash: "0f0f0f0f0f0f0f0f",
			ContentHash:    "deadbeef",
			Width:          640,
			Height:         480,
			FileSize:       2048,
		}},
		Registrar: reg,
		Now:       func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	}

	resp, err := uc.Execute(context.Background(), RegisterAssetRequest{
		ImageName:    "sunset.png",
		CreatorName:  "ayla",
		LicenseType:  "cc-by",
		Tags:         []string{"sunset"},
		ContentBytes: []byte("fake image bytes"),
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	asset := resp.Asset
	if asset.ID == "" {
		t.Fatalf("expected generated id")
	}
	if asset.ImageHash != "0f0f0f0f0f0f0f0f" || asset.ContentHash != "deadbeef" {
		t.Fatalf("fingerprint not applied: %+v", asset)
	}
	if asset.Dimensions.Width != 640 || asset.Dimensions.Height != 480 || asset.FileSize != 2048 {
		t.Fatalf("metadata not applied: %+v", asset)
	}
	if asset.ImageURL != "/uploads/sunset.png" {
		t.Fatalf("unexpected imageUrl %q", asset.ImageURL)
	}
	if !asset.UploadedAt.Equal(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected uploadedAt %v", asset.UploadedAt)
	}
	if resp.Receipt == nil || resp.Receipt.IPAssetID != "sp_1" {
		t.Fatalf("expected registrar receipt, got %+v", resp.Receipt)
	}
	if _, err := repo.GetAsset(asset.ID); err != nil {
		t.Fatalf("asset not stored: %v", err)
	}
}

func TestRegisterAssetPrecomputedHash(t *testing.T) {
	repo := newMemRepo()
	uc := &RegisterAsset{Assets: repo}

	resp, err := uc.Execute(context.Background(), RegisterAssetRequest{
		ImageName:   "sunset.png",
		CreatorName: "ayla",
		LicenseType: "cc-by",
		ImageHash:   "ffffffffffffffff",
		FileSize:    1024,
		Dimensions:  domain.Dimensions{Width: 100, Height: 50},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.Asset.ImageHash != "ffffffffffffffff" {
		t.Fatalf("precomputed hash lost: %+v", resp.Asset)
	}
	if resp.Asset.FileSize != 1024 || resp.Asset.Dimensions.Width != 100 {
		t.Fatalf("metadata lost: %+v", resp.Asset)
	}
	if resp.Asset.Tags == nil || len(resp.Asset.Tags) != 0 {
		t.Fatalf("tags must default to empty slice, got %#v", resp.Asset.Tags)
	}
}

func TestRegisterAssetValidation(t *testing.T) {
	uc := &RegisterAsset{Assets: newMemRepo()}
	cases := []struct {
		name string
		req  RegisterAssetRequest
	}{
		{"missing name", RegisterAssetRequest{CreatorName: "a", LicenseType: "b", ImageHash: "c"}},
		{"missing creator", RegisterAssetRequest{ImageName: "a", LicenseType: "b", ImageHash: "c"}},
		{"missing license", RegisterAssetRequest{ImageName: "a", CreatorName: "b", ImageHash: "c"}},
		{"missing content", RegisterAssetRequest{ImageName: "a", CreatorName: "b", LicenseType: "c"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestRegisterAssetDecodeFailure(t *testing.T) {
	uc := &RegisterAsset{
		Assets: newMemRepo(),
		Prints: fakePrints{err: domain.ErrDecode},
	}
	_, err := uc.Execute(context.Background(), RegisterAssetRequest{
		ImageName:    "a.png",
		CreatorName:  "b",
		LicenseType:  "c",
		ContentBytes: []byte("garbage"),
	})
	if !errors.Is(err, domain.ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestRegisterAssetSurvivesRegistrarFailure(t *testing.T) {
	repo := newMemRepo()
	reg := &fakeRegistrar{err: errors.New("network down")}
	uc := &RegisterAsset{Assets: repo, Registrar: reg}

	resp, err := uc.Execute(context.Background(), RegisterAssetRequest{
		ImageName:   "a.png",
		CreatorName: "b",
		LicenseType: "c",
		ImageHash:   "0f0f0f0f0f0f0f0f",
	})
	if err != nil {
		t.Fatalf("registrar failure must not fail registration: %v", err)
	}
	if resp.Receipt != nil {
		t.Fatalf("expected no receipt on registrar failure")
	}
	if reg.calls != 1 {
		t.Fatalf("registrar not called")
	}
	if _, err := repo.GetAsset(resp.Asset.ID); err != nil {
		t.Fatalf("asset not stored despite registrar failure: %v", err)
	}
}
