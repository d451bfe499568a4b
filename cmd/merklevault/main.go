package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/samuel0642/MerkleVault/internal/catalog"
	"github.com/samuel0642/MerkleVault/internal/config"
	"github.com/samuel0642/MerkleVault/internal/logger"
	"github.com/samuel0642/MerkleVault/internal/merkle"
	"github.com/samuel0642/MerkleVault/internal/storage"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "merklevault",
		Short: "Builds and proves Merkle-authorized vault action catalogs",
	}
	rootCmd.AddCommand(buildCmd())
	rootCmd.AddCommand(proveCmd())
	rootCmd.AddCommand(verifyCmd())
	rootCmd.AddCommand(listCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildCmd() *cobra.Command {
	var (
		configPath string
		outPath    string
		dataDir    string
		withProofs bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a catalog artifact from an integration config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			ctx, err := catalog.BuildFromConfig(cfg)
			if err != nil {
				return err
			}

			artifact, err := catalog.BuildArtifact(ctx, withProofs)
			if err != nil {
				return err
			}

			data, err := artifact.Encode()
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, data, 0644); err != nil {
				return fmt.Errorf("failed to write artifact: %v", err)
			}

			if dataDir != "" {
				store, err := storage.NewStorage(dataDir)
				if err != nil {
					return err
				}
				if err := store.SaveCatalog(artifact); err != nil {
					return err
				}
			}

			logger.Logger().Info().
				Str("root", artifact.Metadata.Root).
				Int("leaves", artifact.Metadata.UsedLeafCount).
				Str("out", outPath).
				Msg("catalog artifact written")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "integration config file")
	cmd.Flags().StringVarP(&outPath, "out", "o", "catalog.json", "artifact output file")
	cmd.Flags().StringVar(&dataDir, "datadir", "", "also store the artifact under this directory")
	cmd.Flags().BoolVar(&withProofs, "proofs", false, "embed a proof in every leaf record")
	return cmd
}

func proveCmd() *cobra.Command {
	var (
		catalogPath string
		index       int
	)

	cmd := &cobra.Command{
		Use:   "prove",
		Short: "Generate the Merkle proof for a leaf of a catalog artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			artifact, err := loadArtifact(catalogPath)
			if err != nil {
				return err
			}
			if index < 0 || index >= len(artifact.Leaves) {
				return fmt.Errorf("leaf index %d out of range [0,%d)", index, len(artifact.Leaves))
			}

			tree, err := treeFromArtifact(artifact)
			if err != nil {
				return err
			}

			proof, err := tree.Prove(common.HexToHash(artifact.Leaves[index].Digest))
			if err != nil {
				return err
			}

			proofHex := make([]string, len(proof))
			for i, h := range proof {
				proofHex[i] = h.Hex()
			}
			out, err := json.MarshalIndent(proofHex, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "catalog.json", "catalog artifact file")
	cmd.Flags().IntVarP(&index, "index", "i", 0, "leaf index to prove")
	return cmd
}

func verifyCmd() *cobra.Command {
	var (
		catalogPath string
		digestHex   string
		proofHex    string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a proof against the root recorded in a catalog artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			artifact, err := loadArtifact(catalogPath)
			if err != nil {
				return err
			}

			var proof []common.Hash
			if proofHex != "" {
				for _, part := range strings.Split(proofHex, ",") {
					proof = append(proof, common.HexToHash(strings.TrimSpace(part)))
				}
			}

			root := common.HexToHash(artifact.Metadata.Root)
			if !merkle.VerifyProof(common.HexToHash(digestHex), proof, root) {
				return fmt.Errorf("proof does not fold to root %s", root.Hex())
			}
			fmt.Printf("proof valid for root %s\n", root.Hex())
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "catalog.json", "catalog artifact file")
	cmd.Flags().StringVar(&digestHex, "digest", "", "leaf digest (0x hex)")
	cmd.Flags().StringVar(&proofHex, "proof", "", "comma-separated sibling hashes, leaf layer first")
	_ = cmd.MarkFlagRequired("digest")
	return cmd
}

func listCmd() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the roots of all stored catalog artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.NewStorage(dataDir)
			if err != nil {
				return err
			}
			roots, err := store.ListCatalogs()
			if err != nil {
				return err
			}
			for _, root := range roots {
				fmt.Println(root)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "datadir", "./data", "artifact storage directory")
	return cmd
}

func loadArtifact(path string) (*catalog.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %v", err)
	}
	return catalog.DecodeArtifact(data)
}

// treeFromArtifact rebuilds the tree from the artifact's leaf records and
// checks it against the recorded root, so stale artifacts fail loudly
// instead of producing proofs against the wrong root.
func treeFromArtifact(artifact *catalog.Artifact) (*merkle.Tree, error) {
	replayed, err := artifact.ReplayRoot()
	if err != nil {
		return nil, err
	}
	if replayed != common.HexToHash(artifact.Metadata.Root) {
		return nil, fmt.Errorf("artifact root %s does not match replayed root %s",
			artifact.Metadata.Root, replayed.Hex())
	}

	digests := make([]common.Hash, len(artifact.Leaves))
	for i, record := range artifact.Leaves {
		digests[i] = common.HexToHash(record.Digest)
	}
	return merkle.NewTree(digests)
}
