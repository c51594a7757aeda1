package service

import (
	"context"
	"fmt"

	"github.com/stellacofre/stellacofre-bfa-go/internal/domain"
)

var wallets = []domain.Wallet{
	{ID: "metamask", Name: "Metamask", Description: "Carteira Ethereum popular"},
	{ID: "stellar", Name: "Stellar Wallet", Description: "Freighter ou Albedo"},
	{ID: "rabby", Name: "Rabby", Description: "Carteira multi-chain"},
}

// Wallets returns the wallets offered by the connect dialog.
func Wallets() []domain.Wallet {
	return append([]domain.Wallet(nil), wallets...)
}

func findWallet(id string) (domain.Wallet, bool) {
	for _, w := range wallets {
		if w.ID == id {
			return w, true
		}
	}
	return domain.Wallet{}, false
}

// ConnectWallet simulates a wallet connection: it announces the attempt
// and closes the dialog. Nothing is contacted.
func (s *SessionService) ConnectWallet(ctx context.Context, id string, req *domain.WalletConnectRequest) (*domain.IntentResponse, error) {
	return s.apply(ctx, id, "SessionService.ConnectWallet", func(sess *Session) ([]domain.Event, error) {
		if err := sess.requireOverlay(domain.OverlayWalletConnect); err != nil {
			return nil, err
		}
		w, ok := findWallet(req.WalletID)
		if !ok {
			return nil, &domain.ErrNotFound{Resource: "wallet", ID: req.WalletID}
		}

		e := newEvent(sess.ID, domain.EventWalletConnectRequested, s.now())
		e.WalletID = w.ID
		e.Toast = toast(domain.ToastSuccess, fmt.Sprintf("Conectando com %s...", w.Name), "Integração em desenvolvimento")
		sess.flow.Close(domain.OverlayWalletConnect)
		return []domain.Event{e}, nil
	})
}
