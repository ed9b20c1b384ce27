package usecase

import (
	"context"
	"crypto/md5"
	"database/sql"
	"fmt"
	"time"

	"vidnotes/domain/dto"
	"vidnotes/domain/model"
	"vidnotes/domain/repository"
	"vidnotes/infrastructure/configuration"
	"vidnotes/infrastructure/logger"
	"vidnotes/infrastructure/utils"
)

type IUserUsecase interface {
	Login(ctx context.Context, req model.ReqLogin) dto.Res
	Register(ctx context.Context, req model.ReqRegister) dto.Res
}

type userUsecase struct {
	userRepo repository.IUser
}

func NewUserUsecase(userRepo repository.IUser) IUserUsecase {
	return &userUsecase{userRepo: userRepo}
}

func (u *userUsecase) Login(ctx context.Context, req model.ReqLogin) dto.Res {
	var res dto.Res
	user, err := u.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		res.ResponseCode = "401"
		res.ResponseMessage = "Invalid email or password"
		return res
	}
	if user.Password != hashPassword(req.Password) {
		res.ResponseCode = "401"
		res.ResponseMessage = "Invalid email or password"
		return res
	}

	token, err := utils.GenerateToken(map[string]interface{}{
		"name": user.Name,
		"iss":  fmt.Sprintf("%d", user.ID),
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}, configuration.C.App.SecretKey)
	if err != nil {
		res.ResponseCode = "500"
		res.ResponseMessage = "Error while generating token"
		return res
	}

	res.ResponseCode = "200"
	res.ResponseMessage = "Success"
	res.Data = map[string]interface{}{"token": token, "user": user}
	return res
}

func (u *userUsecase) Register(ctx context.Context, req model.ReqRegister) dto.Res {
	var res dto.Res
	if req.Name == "" || req.Email == "" || req.Password == "" {
		res.ResponseCode = "400"
		res.ResponseMessage = "Name, email and password are required"
		return res
	}

	if _, err := u.userRepo.GetByEmail(ctx, req.Email); err == nil {
		res.ResponseCode = "409"
		res.ResponseMessage = "Email already registered"
		return res
	} else if err != sql.ErrNoRows {
		logger.GetLogger().WithField("error", err).Error("Error while checking existing user")
		res.ResponseCode = "500"
		res.ResponseMessage = "Internal error"
		return res
	}

	id, err := u.userRepo.CreateUser(ctx, model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashPassword(req.Password),
	})
	if err != nil {
		res.ResponseCode = "500"
		res.ResponseMessage = "Error while creating user"
		return res
	}

	res.ResponseCode = "200"
	res.ResponseMessage = "Success"
	res.Data = map[string]interface{}{"id": id}
	return res
}

func hashPassword(password string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(password)))
}
