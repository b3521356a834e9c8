// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package test

import (
	"testing"
)

// ===================================================================
// Basic Tests
// ===================================================================

func Test_Basic_01(t *testing.T) {
	Check(t, false, "basic/basic_01")
}

func Test_Basic_02(t *testing.T) {
	Check(t, false, "basic/basic_02")
}

func Test_Basic_03(t *testing.T) {
	Check(t, false, "basic/basic_03")
}

func Test_Basic_04(t *testing.T) {
	Check(t, false, "basic/basic_04")
}

func Test_Basic_05(t *testing.T) {
	Check(t, false, "basic/basic_05")
}

func Test_Basic_06(t *testing.T) {
	Check(t, false, "basic/basic_06")
}

func Test_Basic_07(t *testing.T) {
	Check(t, false, "basic/basic_07")
}

func Test_Basic_08(t *testing.T) {
	Check(t, false, "basic/basic_08")
}

func Test_Basic_09(t *testing.T) {
	Check(t, false, "basic/basic_09")
}

func Test_Basic_10(t *testing.T) {
	Check(t, false, "basic/basic_10")
}

func Test_Basic_11(t *testing.T) {
	Check(t, false, "basic/basic_11")
}
func Test_Basic_12(t *testing.T) {
	Check(t, false, "basic/basic_12")
}

// ===================================================================
// Constants Tests
// ===================================================================
func Test_Constant_01(t *testing.T) {
	Check(t, false, "basic/constant_01")
}

func Test_Constant_02(t *testing.T) {
	Check(t, false, "basic/constant_02")
}

func Test_Constant_03(t *testing.T) {
	Check(t, false, "basic/constant_03")
}

func Test_Constant_04(t *testing.T) {
	Check(t, false, "basic/constant_04")
}

func Test_Constant_05(t *testing.T) {
	Check(t, false, "basic/constant_05")
}

func Test_Constant_06(t *testing.T) {
	Check(t, false, "basic/constant_06")
}

func Test_Constant_07(t *testing.T) {
	Check(t, false, "basic/constant_07")
}

func Test_Constant_08(t *testing.T) {
	Check(t, false, "basic/constant_08")
}

func Test_Constant_09(t *testing.T) {
	Check(t, false, "basic/constant_09")
}

func Test_Constant_10(t *testing.T) {
	Check(t, false, "basic/constant_10")
}

func Test_Constant_11(t *testing.T) {
	Check(t, false, "basic/constant_11")
}

func Test_Constant_12(t *testing.T) {
	Check(t, false, "basic/constant_12")
}

func Test_Constant_13(t *testing.T) {
	Check(t, false, "basic/constant_13")
}

func Test_Constant_14(t *testing.T) {
	Check(t, false, "basic/constant_14")
}

func Test_Constant_15(t *testing.T) {
	Check(t, false, "basic/constant_15")
}

func Test_Constant_16(t *testing.T) {
	Check(t, false, "basic/constant_16")
}

// ===================================================================
// Alias Tests
// ===================================================================
func Test_Alias_01(t *testing.T) {
	Check(t, false, "basic/alias_01")
}
func Test_Alias_02(t *testing.T) {
	Check(t, false, "basic/alias_02")
}
func Test_Alias_03(t *testing.T) {
	Check(t, false, "basic/alias_03")
}
func Test_Alias_04(t *testing.T) {
	Check(t, false, "basic/alias_04")
}
func Test_Alias_05(t *testing.T) {
	Check(t, false, "basic/alias_05")
}
func Test_Alias_06(t *testing.T) {
	Check(t, false, "basic/alias_06")
}

// ===================================================================
// Domain Tests
// ===================================================================

func Test_Domain_01(t *testing.T) {
	Check(t, false, "basic/domain_01")
}

func Test_Domain_02(t *testing.T) {
	Check(t, false, "basic/domain_02")
}

func Test_Domain_03(t *testing.T) {
	Check(t, false, "basic/domain_03")
}

// ===================================================================
// Block Tests
// ===================================================================

func Test_Block_01(t *testing.T) {
	Check(t, false, "basic/block_01")
}

func Test_Block_02(t *testing.T) {
	Check(t, false, "basic/block_02")
}

func Test_Block_03(t *testing.T) {
	Check(t, false, "basic/block_03")
}

func Test_Block_04(t *testing.T) {
	Check(t, false, "basic/block_04")
}

// ===================================================================
// Inequality Tests
// ===================================================================

// func Test_Inequality_01(t *testing.T) {
// 	Check(t, false, "basic/ieq_01")
// }

func Test_Inequality_02(t *testing.T) {
	Check(t, false, "basic/ieq_02")
}

// ===================================================================
// Logical Tests
// ===================================================================

func Test_Logic_01(t *testing.T) {
	Check(t, false, "basic/logic_01")
}

// ===================================================================
// Property Tests
// ===================================================================

func Test_Property_01(t *testing.T) {
	Check(t, false, "basic/property_01")
}

// ===================================================================
// Shift Tests
// ===================================================================

func Test_Shift_01(t *testing.T) {
	Check(t, false, "basic/shift_01")
}

func Test_Shift_02(t *testing.T) {
	Check(t, false, "basic/shift_02")
}

func Test_Shift_03(t *testing.T) {
	Check(t, false, "basic/shift_03")
}

func Test_Shift_04(t *testing.T) {
	Check(t, false, "basic/shift_04")
}

func Test_Shift_05(t *testing.T) {
	Check(t, false, "basic/shift_05")
}

func Test_Shift_06(t *testing.T) {
	Check(t, false, "basic/shift_06")
}

func Test_Shift_07(t *testing.T) {
	Check(t, false, "basic/shift_07")
}

func Test_Shift_08(t *testing.T) {
	Check(t, false, "basic/shift_08")
}
func Test_Shift_09(t *testing.T) {
	Check(t, false, "basic/shift_09")
}

// ===================================================================
// Spillage Tests
// ===================================================================

func Test_Spillage_01(t *testing.T) {
	Check(t, false, "basic/spillage_01")
}

func Test_Spillage_02(t *testing.T) {
	Check(t, false, "basic/spillage_02")
}

func Test_Spillage_03(t *testing.T) {
	Check(t, false, "basic/spillage_03")
}

func Test_Spillage_04(t *testing.T) {
	Check(t, false, "basic/spillage_04")
}

func Test_Spillage_05(t *testing.T) {
	Check(t, false, "basic/spillage_05")
}

func Test_Spillage_06(t *testing.T) {
	Check(t, false, "basic/spillage_06")
}

func Test_Spillage_07(t *testing.T) {
	Check(t, false, "basic/spillage_07")
}

func Test_Spillage_08(t *testing.T) {
	Check(t, false, "basic/spillage_08")
}

func Test_Spillage_09(t *testing.T) {
	Check(t, false, "basic/spillage_09")
}

// ===================================================================
// Normalisation Tests
// ===================================================================

func Test_Norm_01(t *testing.T) {
	Check(t, false, "basic/norm_01")
}

func Test_Norm_02(t *testing.T) {
	Check(t, false, "basic/norm_02")
}

func Test_Norm_03(t *testing.T) {
	Check(t, false, "basic/norm_03")
}

func Test_Norm_04(t *testing.T) {
	Check(t, false, "basic/norm_04")
}

func Test_Norm_05(t *testing.T) {
	Check(t, false, "basic/norm_05")
}

func Test_Norm_06(t *testing.T) {
	Check(t, false, "basic/norm_06")
}

func Test_Norm_07(t *testing.T) {
	Check(t, false, "basic/norm_07")
}

// ===================================================================
// If-Zero
// ===================================================================

func Test_If_01(t *testing.T) {
	Check(t, false, "basic/if_01")
}

func Test_If_02(t *testing.T) {
	Check(t, false, "basic/if_02")
}

func Test_If_03(t *testing.T) {
	Check(t, false, "basic/if_03")
}

func Test_If_04(t *testing.T) {
	Check(t, false, "basic/if_04")
}

func Test_If_05(t *testing.T) {
	Check(t, false, "basic/if_05")
}

func Test_If_06(t *testing.T) {
	Check(t, false, "basic/if_06")
}

func Test_If_07(t *testing.T) {
	Check(t, false, "basic/if_07")
}

func Test_If_08(t *testing.T) {
	Check(t, false, "basic/if_08")
}

func Test_If_09(t *testing.T) {
	Check(t, false, "basic/if_09")
}

func Test_If_10(t *testing.T) {
	Check(t, false, "basic/if_10")
}

func Test_If_11(t *testing.T) {
	Check(t, false, "basic/if_11")
}
func Test_If_12(t *testing.T) {
	Check(t, false, "basic/if_12")
}
func Test_If_13(t *testing.T) {
	Check(t, false, "basic/if_13")
}

func Test_If_14(t *testing.T) {
	Check(t, false, "basic/if_14")
}

func Test_If_15(t *testing.T) {
	Check(t, false, "basic/if_15")
}

func Test_If_16(t *testing.T) {
	Check(t, false, "basic/if_16")
}

func Test_If_17(t *testing.T) {
	Check(t, false, "basic/if_17")
}

func Test_If_18(t *testing.T) {
	Check(t, false, "basic/if_18")
}

func Test_If_19(t *testing.T) {
	Check(t, false, "basic/if_19")
}

// ===================================================================
// Guards
// ===================================================================

func Test_Guard_01(t *testing.T) {
	Check(t, false, "basic/guard_01")
}

func Test_Guard_02(t *testing.T) {
	Check(t, false, "basic/guard_02")
}

func Test_Guard_03(t *testing.T) {
	Check(t, false, "basic/guard_03")
}

func Test_Guard_04(t *testing.T) {
	Check(t, false, "basic/guard_04")
}

func Test_Guard_05(t *testing.T) {
	Check(t, false, "basic/guard_05")
}

// ===================================================================
// Types
// ===================================================================

func Test_Type_01(t *testing.T) {
	Check(t, false, "basic/type_01")
}

func Test_Type_02(t *testing.T) {
	Check(t, false, "basic/type_02")
}

func Test_Type_03(t *testing.T) {
	Check(t, false, "basic/type_03")
}

func Test_Type_04(t *testing.T) {
	Check(t, false, "basic/type_04")
}

func Test_Type_05(t *testing.T) {
	Check(t, false, "basic/type_05")
}

func Test_Type_06(t *testing.T) {
	Check(t, false, "basic/type_06")
}

func Test_Type_07(t *testing.T) {
	Check(t, false, "basic/type_07")
}

func Test_Type_08(t *testing.T) {
	Check(t, false, "basic/type_08")
}

func Test_Type_09(t *testing.T) {
	Check(t, false, "basic/type_09")
}

func Test_Type_10(t *testing.T) {
	Check(t, false, "basic/type_10")
}

func Test_Type_11(t *testing.T) {
	Check(t, false, "basic/type_11")
}

func Test_Type_12(t *testing.T) {
	Check(t, false, "basic/type_12")
}

// ===================================================================
// Range Constraints
// ===================================================================

func Test_Range_01(t *testing.T) {
	Check(t, false, "basic/range_01")
}

func Test_Range_02(t *testing.T) {
	Check(t, false, "basic/range_02")
}

func Test_Range_03(t *testing.T) {
	Check(t, false, "basic/range_03")
}

func Test_Range_04(t *testing.T) {
	Check(t, false, "basic/range_04")
}

func Test_Range_05(t *testing.T) {
	Check(t, false, "basic/range_05")
}

// ===================================================================
// Constant Propagation
// ===================================================================

func Test_ConstExpr_01(t *testing.T) {
	Check(t, false, "basic/constexpr_01")
}

func Test_ConstExpr_02(t *testing.T) {
	Check(t, false, "basic/constexpr_02")
}

func Test_ConstExpr_03(t *testing.T) {
	Check(t, false, "basic/constexpr_03")
}

func Test_ConstExpr_04(t *testing.T) {
	Check(t, false, "basic/constexpr_04")
}

func Test_ConstExpr_05(t *testing.T) {
	Check(t, false, "basic/constexpr_05")
}

// ===================================================================
// Modules
// ===================================================================

func Test_Module_01(t *testing.T) {
	Check(t, false, "basic/module_01")
}

func Test_Module_02(t *testing.T) {
	Check(t, false, "basic/module_02")
}

func Test_Module_03(t *testing.T) {
	Check(t, false, "basic/module_03")
}

func Test_Module_04(t *testing.T) {
	Check(t, false, "basic/module_04")
}

func Test_Module_05(t *testing.T) {
	Check(t, false, "basic/module_05")
}

func Test_Module_06(t *testing.T) {
	Check(t, false, "basic/module_06")
}

func Test_Module_07(t *testing.T) {
	Check(t, false, "basic/module_07")
}

func Test_Module_08(t *testing.T) {
	Check(t, false, "basic/module_08")
}

func Test_Module_09(t *testing.T) {
	Check(t, false, "basic/module_09")
}

func Test_Module_10(t *testing.T) {
	Check(t, false, "basic/module_10")
}

// NOTE: uses conditional module
//
// func Test_Module_11(t *testing.T) {
// 	Check(t, false, "basic/module_11")
// }

// ===================================================================
// Permutations
// ===================================================================

func Test_Permute_01(t *testing.T) {
	Check(t, false, "basic/permute_01")
}

func Test_Permute_02(t *testing.T) {
	Check(t, false, "basic/permute_02")
}

func Test_Permute_03(t *testing.T) {
	Check(t, false, "basic/permute_03")
}

func Test_Permute_04(t *testing.T) {
	Check(t, false, "basic/permute_04")
}

func Test_Permute_05(t *testing.T) {
	Check(t, false, "basic/permute_05")
}

func Test_Permute_06(t *testing.T) {
	Check(t, false, "basic/permute_06")
}

func Test_Permute_07(t *testing.T) {
	Check(t, false, "basic/permute_07")
}

func Test_Permute_08(t *testing.T) {
	Check(t, false, "basic/permute_08")
}

func Test_Permute_09(t *testing.T) {
	Check(t, false, "basic/permute_09")
}

func Test_Permute_10(t *testing.T) {
	Check(t, false, "basic/permute_10")
}

func Test_Permute_11(t *testing.T) {
	Check(t, false, "basic/permute_11")
}

// ===================================================================
// Sorting Constraints
// ===================================================================

func Test_Sorted_01(t *testing.T) {
	Check(t, false, "basic/sorted_01")
}
func Test_Sorted_02(t *testing.T) {
	Check(t, false, "basic/sorted_02")
}
func Test_Sorted_03(t *testing.T) {
	Check(t, false, "basic/sorted_03")
}
func Test_Sorted_04(t *testing.T) {
	Check(t, false, "basic/sorted_04")
}
func Test_Sorted_05(t *testing.T) {
	Check(t, false, "basic/sorted_05")
}
func Test_Sorted_06(t *testing.T) {
	Check(t, false, "basic/sorted_06")
}

func Test_Sorted_07(t *testing.T) {
	Check(t, false, "basic/sorted_07")
}
func Test_Sorted_08(t *testing.T) {
	Check(t, false, "basic/sorted_08")
}

func Test_StrictSorted_01(t *testing.T) {
	Check(t, false, "basic/strictsorted_01")
}

func Test_StrictSorted_02(t *testing.T) {
	Check(t, false, "basic/strictsorted_02")
}

func Test_StrictSorted_03(t *testing.T) {
	Check(t, false, "basic/strictsorted_03")
}

func Test_StrictSorted_04(t *testing.T) {
	Check(t, false, "basic/strictsorted_04")
}

func Test_StrictSorted_05(t *testing.T) {
	Check(t, false, "basic/strictsorted_05")
}

// ===================================================================
// Lookups
// ===================================================================

func Test_Lookup_01(t *testing.T) {
	Check(t, false, "basic/lookup_01")
}

func Test_Lookup_02(t *testing.T) {
	Check(t, false, "basic/lookup_02")
}

func Test_Lookup_03(t *testing.T) {
	Check(t, false, "basic/lookup_03")
}

func Test_Lookup_04(t *testing.T) {
	Check(t, false, "basic/lookup_04")
}

func Test_Lookup_05(t *testing.T) {
	Check(t, false, "basic/lookup_05")
}

func Test_Lookup_06(t *testing.T) {
	Check(t, false, "basic/lookup_06")
}

func Test_Lookup_07(t *testing.T) {
	Check(t, false, "basic/lookup_07")
}

func Test_Lookup_08(t *testing.T) {
	Check(t, false, "basic/lookup_08")
}

func Test_Lookup_09(t *testing.T) {
	Check(t, false, "basic/lookup_09")
}

func Test_Lookup_10(t *testing.T) {
	Check(t, false, "basic/lookup_10")
}

func Test_Lookup_11(t *testing.T) {
	Check(t, false, "basic/lookup_11")
}

func Test_Lookup_12(t *testing.T) {
	Check(t, false, "basic/lookup_12")
}

func Test_Lookup_13(t *testing.T) {
	Check(t, false, "basic/lookup_13")
}

func Test_Lookup_14(t *testing.T) {
	Check(t, false, "basic/lookup_14")
}

func Test_Lookup_15(t *testing.T) {
	Check(t, false, "basic/lookup_15")
}

func Test_Lookup_16(t *testing.T) {
	Check(t, false, "basic/lookup_16")
}

// ===================================================================
// Interleaving
// ===================================================================

func Test_Interleave_01(t *testing.T) {
	Check(t, false, "basic/interleave_01")
}

func Test_Interleave_02(t *testing.T) {
	Check(t, false, "basic/interleave_02")
}

func Test_Interleave_03(t *testing.T) {
	Check(t, false, "basic/interleave_03")
}

func Test_Interleave_04(t *testing.T) {
	Check(t, false, "basic/interleave_04")
}

func Test_Interleave_05(t *testing.T) {
	Check(t, false, "basic/interleave_05")
}
func Test_Interleave_06(t *testing.T) {
	Check(t, false, "basic/interleave_06")
}
func Test_Interleave_07(t *testing.T) {
	Check(t, false, "basic/interleave_07")
}

// ===================================================================
// Functions
// ===================================================================

func Test_Fun_01(t *testing.T) {
	Check(t, false, "basic/fun_01")
}

func Test_Fun_02(t *testing.T) {
	Check(t, false, "basic/fun_02")
}

func Test_Fun_03(t *testing.T) {
	Check(t, false, "basic/fun_03")
}

func Test_Fun_04(t *testing.T) {
	Check(t, false, "basic/fun_04")
}

func Test_Fun_05(t *testing.T) {
	Check(t, false, "basic/fun_05")
}

func Test_Fun_06(t *testing.T) {
	Check(t, false, "basic/fun_06")
}

// ===================================================================
// Pure Functions
// ===================================================================

func Test_PureFun_01(t *testing.T) {
	Check(t, false, "basic/purefun_01")
}

func Test_PureFun_02(t *testing.T) {
	Check(t, false, "basic/purefun_02")
}

func Test_PureFun_03(t *testing.T) {
	Check(t, false, "basic/purefun_03")
}

func Test_PureFun_04(t *testing.T) {
	Check(t, false, "basic/purefun_04")
}

func Test_PureFun_05(t *testing.T) {
	Check(t, false, "basic/purefun_05")
}

func Test_PureFun_06(t *testing.T) {
	Check(t, false, "basic/purefun_06")
}

func Test_PureFun_07(t *testing.T) {
	Check(t, false, "basic/purefun_07")
}

func Test_PureFun_08(t *testing.T) {
	Check(t, false, "basic/purefun_08")
}

func Test_PureFun_09(t *testing.T) {
	Check(t, false, "basic/purefun_09")
}

// ===================================================================
// For Loops
// ===================================================================

func Test_For_01(t *testing.T) {
	Check(t, false, "basic/for_01")
}

func Test_For_02(t *testing.T) {
	Check(t, false, "basic/for_02")
}

func Test_For_03(t *testing.T) {
	Check(t, false, "basic/for_03")
}

func Test_For_04(t *testing.T) {
	Check(t, false, "basic/for_04")
}

func Test_For_05(t *testing.T) {
	Check(t, false, "basic/for_05")
}

func Test_For_06(t *testing.T) {
	Check(t, false, "basic/for_06")
}

// ===================================================================
// Arrays
// ===================================================================

func Test_Array_01(t *testing.T) {
	Check(t, false, "basic/array_01")
}

func Test_Array_02(t *testing.T) {
	Check(t, false, "basic/array_02")
}

func Test_Array_03(t *testing.T) {
	Check(t, false, "basic/array_03")
}

func Test_Array_04(t *testing.T) {
	Check(t, false, "basic/array_04")
}

func Test_Array_05(t *testing.T) {
	Check(t, false, "basic/array_05")
}

func Test_Array_06(t *testing.T) {
	Check(t, false, "basic/array_06")
}

func Test_Array_07(t *testing.T) {
	Check(t, false, "basic/array_07")
}

func Test_Array_08(t *testing.T) {
	Check(t, false, "basic/array_08")
}

// ===================================================================
// Reduce
// ===================================================================

func Test_Reduce_01(t *testing.T) {
	Check(t, false, "basic/reduce_01")
}

func Test_Reduce_02(t *testing.T) {
	Check(t, false, "basic/reduce_02")
}

func Test_Reduce_03(t *testing.T) {
	Check(t, false, "basic/reduce_03")
}

func Test_Reduce_04(t *testing.T) {
	Check(t, false, "basic/reduce_04")
}

func Test_Reduce_05(t *testing.T) {
	Check(t, false, "basic/reduce_05")
}

// ===================================================================
// Debug
// ===================================================================

func Test_Debug_01(t *testing.T) {
	Check(t, false, "basic/debug_01")
}

func Test_Debug_02(t *testing.T) {
	Check(t, false, "basic/debug_02")
}

func Test_Debug_03(t *testing.T) {
	Check(t, false, "basic/debug_03")
}

// ===================================================================
// Perspectives
// ===================================================================

func Test_Perspective_01(t *testing.T) {
	Check(t, false, "basic/perspective_01")
}

func Test_Perspective_02(t *testing.T) {
	Check(t, false, "basic/perspective_02")
}

func Test_Perspective_03(t *testing.T) {
	Check(t, false, "basic/perspective_03")
}

func Test_Perspective_04(t *testing.T) {
	Check(t, false, "basic/perspective_04")
}

func Test_Perspective_05(t *testing.T) {
	Check(t, false, "basic/perspective_05")
}

func Test_Perspective_06(t *testing.T) {
	Check(t, false, "basic/perspective_06")
}

func Test_Perspective_07(t *testing.T) {
	Check(t, false, "basic/perspective_07")
}

func Test_Perspective_08(t *testing.T) {
	Check(t, false, "basic/perspective_08")
}

func Test_Perspective_09(t *testing.T) {
	Check(t, false, "basic/perspective_09")
}

func Test_Perspective_10(t *testing.T) {
	Check(t, false, "basic/perspective_10")
}

func Test_Perspective_11(t *testing.T) {
	Check(t, false, "basic/perspective_11")
}

func Test_Perspective_12(t *testing.T) {
	Check(t, false, "basic/perspective_12")
}

func Test_Perspective_13(t *testing.T) {
	Check(t, false, "basic/perspective_13")
}

func Test_Perspective_14(t *testing.T) {
	Check(t, false, "basic/perspective_14")
}

func Test_Perspective_15(t *testing.T) {
	Check(t, false, "basic/perspective_15")
}

func Test_Perspective_16(t *testing.T) {
	Check(t, false, "basic/perspective_16")
}

func Test_Perspective_17(t *testing.T) {
	Check(t, false, "basic/perspective_17")
}

func Test_Perspective_18(t *testing.T) {
	Check(t, false, "basic/perspective_18")
}

func Test_Perspective_19(t *testing.T) {
	Check(t, false, "basic/perspective_19")
}

func Test_Perspective_20(t *testing.T) {
	Check(t, false, "basic/perspective_20")
}

func Test_Perspective_21(t *testing.T) {
	Check(t, false, "basic/perspective_21")
}

func Test_Perspective_22(t *testing.T) {
	Check(t, false, "basic/perspective_22")
}

func Test_Perspective_23(t *testing.T) {
	Check(t, false, "basic/perspective_23")
}

func Test_Perspective_24(t *testing.T) {
	Check(t, false, "basic/perspective_24")
}

func Test_Perspective_26(t *testing.T) {
	Check(t, false, "basic/perspective_26")
}

func Test_Perspective_27(t *testing.T) {
	Check(t, false, "basic/perspective_27")
}

func Test_Perspective_28(t *testing.T) {
	Check(t, false, "basic/perspective_28")
}

func Test_Perspective_29(t *testing.T) {
	Check(t, false, "basic/perspective_29")
}

func Test_Perspective_30(t *testing.T) {
	Check(t, false, "basic/perspective_30")
}

func Test_Perspective_31(t *testing.T) {
	Check(t, false, "basic/perspective_31")
}

// ===================================================================
// Let
// ===================================================================

func Test_Let_01(t *testing.T) {
	Check(t, false, "basic/let_01")
}

func Test_Let_02(t *testing.T) {
	Check(t, false, "basic/let_02")
}

func Test_Let_03(t *testing.T) {
	Check(t, false, "basic/let_03")
}

func Test_Let_04(t *testing.T) {
	Check(t, false, "basic/let_04")
}

func Test_Let_05(t *testing.T) {
	Check(t, false, "basic/let_05")
}

func Test_Let_06(t *testing.T) {
	Check(t, false, "basic/let_06")
}

func Test_Let_07(t *testing.T) {
	Check(t, false, "basic/let_07")
}

func Test_Let_08(t *testing.T) {
	Check(t, false, "basic/let_08")
}
func Test_Let_09(t *testing.T) {
	Check(t, false, "basic/let_09")
}

func Test_Let_10(t *testing.T) {
	Check(t, false, "basic/let_10")
}

func Test_Let_11(t *testing.T) {
	Check(t, false, "basic/let_11")
}

// ===================================================================
// Computed Columns
// ===================================================================

func Test_Compute_01(t *testing.T) {
	Check(t, false, "basic/compute_01")
}

func Test_Compute_02(t *testing.T) {
	Check(t, false, "basic/compute_02")
}

// ===================================================================
// Native computations
// ===================================================================

func Test_Native_01(t *testing.T) {
	Check(t, false, "basic/native_01")
}
func Test_Native_02(t *testing.T) {
	Check(t, false, "basic/native_02")
}
func Test_Native_03(t *testing.T) {
	Check(t, false, "basic/native_03")
}
func Test_Native_04(t *testing.T) {
	Check(t, false, "basic/native_04")
}

func Test_Native_05(t *testing.T) {
	Check(t, false, "basic/native_05")
}

func Test_Native_06(t *testing.T) {
	Check(t, false, "basic/native_06")
}

func Test_Native_07(t *testing.T) {
	Check(t, false, "basic/native_07")
}

func Test_Native_08(t *testing.T) {
	Check(t, false, "basic/native_08")
}

func Test_Native_09(t *testing.T) {
	Check(t, false, "basic/native_09")
}

func Test_Native_10(t *testing.T) {
	Check(t, false, "basic/native_10")
}

func Test_Native_11(t *testing.T) {
	Check(t, false, "basic/native_11")
}

// ===================================================================
// Field Agnostisticy Tests
// ===================================================================

// Fails because need to split the constaint!  In fact, the split in this case
// is quite easy because its an aligned equality.
//
//  func Test_Agnostic_01(t *testing.T) {
//      Check(t, false, "basic/agnostic_01")
//  }

func Test_Agnostic_02(t *testing.T) {
	Check(t, false, "basic/agnostic_02")
}

// ===================================================================
// Standard Library Tests
// ===================================================================

func Test_Stdlib_01(t *testing.T) {
	Check(t, true, "basic/stdlib_01")
}

func Test_Stdlib_02(t *testing.T) {
	Check(t, true, "basic/stdlib_02")
}

func Test_Stdlib_03(t *testing.T) {
	Check(t, true, "basic/stdlib_03")
}

func Test_Stdlib_04(t *testing.T) {
	Check(t, true, "basic/stdlib_04")
}

func Test_Stdlib_05(t *testing.T) {
	Check(t, true, "basic/stdlib_05")
}
