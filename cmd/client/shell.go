package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/atinyakov/SixCities/internal/client/prompt"
	"github.com/atinyakov/SixCities/internal/client/service"
	"github.com/atinyakov/SixCities/internal/client/state"
	"github.com/atinyakov/SixCities/internal/models"
)

const helpText = `Available commands:
  offers [city]    list offers, optionally of one city
  offer <id>       show an offer with its reviews and nearby offers
  reviews <id>     show the reviews of an offer
  login            sign in
  logout           sign out
  review <id>      post a review (signed in only)
  favorites        list favorites by city (signed in only)
  fav <id>         toggle an offer's favorite flag (signed in only)
  status           show session and favorites count
  exit             quit`

// shell is the interactive front end over the operations.
type shell struct {
	svc    *service.Service
	prompt *prompt.Prompter
	out    io.Writer
}

func newShell(svc *service.Service, in io.Reader, out io.Writer) *shell {
	return &shell{svc: svc, prompt: prompt.New(in, out), out: out}
}

// run reads commands until exit, end of input or ctx is done.
func (sh *shell) run(ctx context.Context) {
	for ctx.Err() == nil {
		line, err := sh.prompt.Line("six-cities> ")
		if err != nil {
			return
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" {
			sh.println("Bye")
			return
		}
		if err := sh.exec(ctx, args); err != nil {
			sh.println("Error:", err)
		}
	}
}

func (sh *shell) exec(ctx context.Context, args []string) error {
	switch args[0] {
	case "help":
		sh.println(helpText)
	case "offers":
		city := ""
		if len(args) > 1 {
			city = strings.Join(args[1:], " ")
		}
		return sh.offers(ctx, city)
	case "offer":
		id, err := offerArg(args)
		if err != nil {
			return err
		}
		return sh.offer(ctx, id)
	case "reviews":
		id, err := offerArg(args)
		if err != nil {
			return err
		}
		if _, err := sh.svc.FetchReviewComments(ctx, id); err != nil {
			return err
		}
		sh.printReviews(sh.svc.Store().State().CurrentOffer.Reviews)
	case "login":
		creds, err := sh.prompt.Credentials()
		if err != nil {
			return err
		}
		user, err := sh.svc.Login(ctx, creds)
		if err != nil {
			// login leaves the loading flag to its caller
			sh.svc.Store().Dispatch(state.SetUserLoading{Loading: false})
			return err
		}
		sh.println("Signed in as", user.Email)
	case "logout":
		if err := sh.svc.Logout(ctx); err != nil {
			sh.svc.Store().Dispatch(state.SetUserLoading{Loading: false})
			return err
		}
		sh.println("Signed out")
	case "review":
		id, err := offerArg(args)
		if err != nil {
			return err
		}
		return sh.review(ctx, id)
	case "favorites":
		return sh.favorites(ctx)
	case "fav":
		id, err := offerArg(args)
		if err != nil {
			return err
		}
		fav, err := sh.svc.ToggleFavorite(ctx, id)
		if errors.Is(err, service.ErrNotAuthorized) {
			return errors.New("sign in first (login)")
		}
		if err != nil {
			return err
		}
		if fav {
			sh.println("Added to favorites")
		} else {
			sh.println("Removed from favorites")
		}
	case "status":
		st := sh.svc.Store().State()
		sh.printf("Status: %s\n", st.User.AuthorizationStatus)
		if st.User.Email != "" {
			sh.printf("Email: %s\n", st.User.Email)
		}
		sh.printf("Favorites: %d\n", st.Favorites.Count)
	default:
		sh.println("Unknown command. Type 'help' for a list of commands.")
	}
	return nil
}

func (sh *shell) offers(ctx context.Context, city string) error {
	offers, err := sh.svc.FetchOffers(ctx)
	if err != nil {
		return err
	}
	shown := 0
	for _, o := range offers {
		if city != "" && !strings.EqualFold(o.City.Name, city) {
			continue
		}
		sh.printOffer(o)
		shown++
	}
	sh.printf("%d places to stay\n", shown)
	return nil
}

// offer loads the detail and the reviews concurrently, as the offer page does.
func (sh *shell) offer(ctx context.Context, id models.OfferID) error {
	var (
		wg                   sync.WaitGroup
		offerErr, reviewsErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, offerErr = sh.svc.FetchSingleOffer(ctx, id)
	}()
	go func() {
		defer wg.Done()
		_, reviewsErr = sh.svc.FetchReviewComments(ctx, id)
	}()
	wg.Wait()
	if err := errors.Join(offerErr, reviewsErr); err != nil {
		return err
	}

	st := sh.svc.Store().State()
	o := st.CurrentOffer.Offer
	if o == nil {
		return fmt.Errorf("offer %s not loaded", id)
	}
	mark := ""
	if o.IsFavorite {
		mark = " [favorite]"
	}
	if o.IsPremium {
		mark += " [premium]"
	}
	sh.printf("%s%s\n", o.Title, mark)
	sh.printf("  %s in %s, €%d/night, rating %.1f\n", o.Type, o.City.Name, o.Price, o.Rating)
	sh.printf("  %d bedrooms, max %d adults\n", o.Bedrooms, o.MaxAdults)
	if len(o.Goods) > 0 {
		sh.printf("  Inside: %s\n", strings.Join(o.Goods, ", "))
	}
	sh.printf("  Host: %s\n", o.Host.Name)
	if o.Description != "" {
		sh.printf("  %s\n", o.Description)
	}
	sh.printReviews(st.CurrentOffer.Reviews)

	if len(st.Offers.Offers) == 0 {
		return nil
	}
	nearby := state.NearbyOffers(st.Offers.Offers, id, state.NearbyLimit)
	if len(nearby) > 0 {
		sh.println("Other places in the neighbourhood:")
		for _, n := range nearby {
			sh.printOffer(n)
		}
	}
	return nil
}

func (sh *shell) review(ctx context.Context, id models.OfferID) error {
	if !state.IsAuthorized(sh.svc.Store().State()) {
		return errors.New("sign in first (login)")
	}
	data, err := sh.prompt.Review(id)
	if err != nil {
		return err
	}
	if err := sh.svc.PostReview(ctx, data); err != nil {
		sh.svc.Store().Dispatch(state.SetUserLoading{Loading: false})
		return err
	}
	sh.println("Review posted")
	if _, err := sh.svc.FetchReviewComments(ctx, id); err != nil {
		return err
	}
	sh.printReviews(sh.svc.Store().State().CurrentOffer.Reviews)
	return nil
}

func (sh *shell) favorites(ctx context.Context) error {
	if !state.IsAuthorized(sh.svc.Store().State()) {
		return errors.New("sign in first (login)")
	}
	res := sh.svc.FetchFavorites(ctx)
	if !res.OK() {
		sh.printf("Could not load favorites (%s)\n", res.Outcome)
	}
	groups := state.OffersByCity(res.Value)
	if len(groups) == 0 {
		sh.println("Nothing yet saved.")
		return nil
	}
	for _, g := range groups {
		sh.println(g.City)
		for _, o := range g.Offers {
			sh.printOffer(o)
		}
	}
	return nil
}

func (sh *shell) printOffer(o models.Offer) {
	mark := " "
	if o.IsFavorite {
		mark = "*"
	}
	sh.printf("%s %-4s %-45s €%-5d %s\n", mark, o.ID, o.Title, o.Price, o.City.Name)
}

func (sh *shell) printReviews(reviews []models.Review) {
	sh.printf("Reviews · %d\n", len(reviews))
	for _, r := range state.LatestReviews(reviews, state.ReviewsLimit) {
		sh.printf("  %s (%.0f/5, %s): %s\n", r.User.Name, r.Rating, r.Date.Format("January 2006"), r.Comment)
	}
}

func (sh *shell) println(a ...any) {
	fmt.Fprintln(sh.out, a...)
}

func (sh *shell) printf(format string, a ...any) {
	fmt.Fprintf(sh.out, format, a...)
}

func offerArg(args []string) (models.OfferID, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("usage: %s <id>", args[0])
	}
	return models.NewOfferID(args[1])
}
